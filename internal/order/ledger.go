package order

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/cart"
)

// Ledger is the append-only order history plus the per-user stats it keeps
// alongside. One mutex covers both, which makes the append and the stats
// update atomic: two concurrent Record calls for the same user can never
// observe the same order count or assign the same order number.
type Ledger struct {
	mu     sync.RWMutex
	orders []Order
	stats  map[string]*UserStats
}

func NewLedger() *Ledger {
	return &Ledger{
		stats: make(map[string]*UserStats),
	}
}

// Record appends a new order. OrderNumber is the user's prior order count
// plus one, so numbering stays gapless as long as Record is the sole
// mutator. FinalAmount is total minus discount; bounding the discount is the
// caller's job.
func (l *Ledger) Record(userID string, items []cart.Item, totalAmount decimal.Decimal, discountCode string, discountAmount decimal.Decimal) (Order, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Order{}, fmt.Errorf("order: failed to generate order id: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()

	o := Order{
		ID:             id,
		UserID:         userID,
		Items:          append([]cart.Item(nil), items...),
		TotalAmount:    totalAmount,
		DiscountCode:   discountCode,
		DiscountAmount: discountAmount,
		FinalAmount:    totalAmount.Sub(discountAmount),
		CreatedAt:      now,
		OrderNumber:    l.countForUserLocked(userID) + 1,
	}
	l.orders = append(l.orders, o)

	st, ok := l.stats[userID]
	if !ok {
		st = &UserStats{UserID: userID, TotalSpent: decimal.Zero}
		l.stats[userID] = st
	}
	st.OrderCount++
	st.TotalSpent = st.TotalSpent.Add(o.FinalAmount)
	st.LastOrderDate = now

	log.Info().
		Stringer("order_id", o.ID).
		Str("user_id", userID).
		Int("order_number", o.OrderNumber).
		Str("final_amount", o.FinalAmount.String()).
		Msg("order: recorded")

	return o, nil
}

func (l *Ledger) countForUserLocked(userID string) int {
	if st, ok := l.stats[userID]; ok {
		return st.OrderCount
	}
	return 0
}

// CountForUser returns how many orders the user has completed, 0 if none.
func (l *Ledger) CountForUser(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.countForUserLocked(userID)
}

// OrdersForUser returns the user's orders in creation order.
func (l *Ledger) OrdersForUser(userID string) []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Order
	for _, o := range l.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// Stats recomputes the aggregate projection from the raw order sequence.
// Only the per-user numbers reuse the incrementally maintained UserStats;
// everything else is derived on demand to keep a single source of truth.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Stats{
		TotalOrders:         len(l.orders),
		TotalPurchaseAmount: decimal.Zero,
		TotalDiscountAmount: decimal.Zero,
	}
	for _, o := range l.orders {
		for _, it := range o.Items {
			s.TotalItemsPurchased += it.Quantity
		}
		s.TotalPurchaseAmount = s.TotalPurchaseAmount.Add(o.TotalAmount)
		s.TotalDiscountAmount = s.TotalDiscountAmount.Add(o.DiscountAmount)
	}

	s.UserStats = make([]UserStats, 0, len(l.stats))
	for _, st := range l.stats {
		s.UserStats = append(s.UserStats, *st)
	}
	sort.Slice(s.UserStats, func(i, j int) bool {
		return s.UserStats[i].UserID < s.UserStats[j].UserID
	})

	return s
}
