package checkout

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/cart"
	"github.com/ecom-labs/storefront/internal/discount"
	"github.com/ecom-labs/storefront/internal/order"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidCode = errors.New("invalid or already used discount code")
)

// Result is what a successful checkout hands back to the boundary.
type Result struct {
	OrderID         string `json:"order_id"`
	OrderNumber     int    `json:"order_number"`
	NewDiscountCode string `json:"new_discount_code,omitempty"`
}

// Preview is the dry-run outcome of applying a code to the current cart.
type Preview struct {
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TotalAfterDiscount decimal.Decimal `json:"total_after_discount"`
}

// Service orchestrates one checkout: validate the cart, resolve an optional
// discount code, record the order, redeem the code, clear the cart, and
// issue a reward code on every Nth order. A per-user mutex serializes whole
// attempts so a user's checkout is an all-or-nothing transaction over the
// stores.
type Service struct {
	carts     *cart.Store
	orders    *order.Ledger
	discounts *discount.Ledger

	discountPercent decimal.Decimal
	rewardEveryN    int

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewService(carts *cart.Store, orders *order.Ledger, discounts *discount.Ledger, discountPercent int64, rewardEveryN int) *Service {
	if rewardEveryN <= 0 {
		rewardEveryN = 3
	}
	return &Service{
		carts:           carts,
		orders:          orders,
		discounts:       discounts,
		discountPercent: decimal.NewFromInt(discountPercent),
		rewardEveryN:    rewardEveryN,
		userLocks:       make(map[string]*sync.Mutex),
	}
}

func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.userLocks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.userLocks[userID] = mu
	}
	return mu
}

// Checkout converts the user's cart into an order. An empty cart is the only
// user-facing failure; an invalid discount code is silently ignored and the
// order proceeds at full price.
func (s *Service) Checkout(userID, discountCode string) (Result, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	c := s.carts.GetOrCreate(userID)
	if len(c.Items) == 0 {
		return Result{}, ErrEmptyCart
	}

	discountAmount := decimal.Zero
	codeMatched := false
	if discountCode != "" {
		if _, ok := s.discounts.Validate(discountCode, userID); ok {
			discountAmount = s.discountFor(c.TotalAmount)
			codeMatched = true
		} else {
			log.Warn().Str("user_id", userID).Str("code", discountCode).Msg("checkout: ignoring invalid discount code")
		}
	}

	o, err := s.orders.Record(userID, c.Items, c.TotalAmount, discountCode, discountAmount)
	if err != nil {
		return Result{}, err
	}

	if codeMatched {
		s.discounts.Redeem(discountCode, o.ID.String())
	}

	s.carts.Clear(userID)

	res := Result{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
	}

	if s.shouldIssueReward(userID) {
		reward, err := s.discounts.Generate("", userID)
		if err != nil {
			// Random codes never collide with ErrCodeExists; anything else
			// must not fail the already-recorded order.
			log.Error().Err(err).Str("user_id", userID).Msg("checkout: failed to issue reward code")
		} else {
			res.NewDiscountCode = reward.Code
		}
	}

	return res, nil
}

// PreviewDiscount reports what a code would take off the current cart total
// without touching any ledger state. Unlike Checkout it surfaces a bad code
// to the caller.
func (s *Service) PreviewDiscount(userID, code string) (Preview, error) {
	c := s.carts.GetOrCreate(userID)
	if len(c.Items) == 0 {
		return Preview{}, ErrEmptyCart
	}

	if _, ok := s.discounts.Validate(code, userID); !ok {
		return Preview{}, ErrInvalidCode
	}

	amount := s.discountFor(c.TotalAmount)
	return Preview{
		DiscountAmount:     amount,
		TotalAfterDiscount: c.TotalAmount.Sub(amount),
	}, nil
}

func (s *Service) discountFor(total decimal.Decimal) decimal.Decimal {
	return total.Mul(s.discountPercent).Div(decimal.NewFromInt(100))
}

// shouldIssueReward is true iff the user's order count is a positive
// multiple of the reward interval.
func (s *Service) shouldIssueReward(userID string) bool {
	count := s.orders.CountForUser(userID)
	return count > 0 && count%s.rewardEveryN == 0
}
