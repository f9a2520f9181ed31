package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/catalog"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Store keeps one cart per user. All mutations for a given user are
// serialized by the store's mutex, so concurrent AddItem calls never lose
// updates or produce a stale TotalAmount.
type Store struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	carts   map[string]*Cart
}

func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		catalog: cat,
		carts:   make(map[string]*Cart),
	}
}

// GetOrCreate returns a copy of the user's cart, creating an empty one on
// first access. It never fails.
func (s *Store) GetOrCreate(userID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(userID).copyOf()
}

func (s *Store) getOrCreateLocked(userID string) *Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{UserID: userID, TotalAmount: decimal.Zero}
		s.carts[userID] = c
	}
	return c
}

// AddItem puts qty units of a product into the user's cart. An existing line
// for the same product is incremented, otherwise a new line is appended.
func (s *Store) AddItem(userID, productID string, qty int) (Cart, error) {
	if qty <= 0 {
		log.Warn().Str("user_id", userID).Int("quantity", qty).Msg("cart: rejected non-positive quantity")
		return Cart{}, fmt.Errorf("cart: %w, got %d", ErrInvalidQuantity, qty)
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return Cart{}, fmt.Errorf("cart: failed to add product %s: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)

	found := false
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, Item{Product: product, Quantity: qty})
	}

	c.recalcTotal()

	return c.copyOf(), nil
}

// Clear resets the user's cart to empty. Called after a successful checkout.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	c.Items = nil
	c.TotalAmount = decimal.Zero
}
