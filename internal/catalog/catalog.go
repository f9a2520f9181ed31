package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a purchasable item. Products are seeded once at startup and
// never change afterwards.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Catalog is a read-only product lookup.
type Catalog struct {
	byID    map[string]Product
	ordered []Product
}

func New(products []Product) *Catalog {
	c := &Catalog{byID: make(map[string]Product, len(products))}
	for _, p := range products {
		c.byID[p.ID] = p
		c.ordered = append(c.ordered, p)
	}
	return c
}

// Default returns the reference catalog the storefront ships with.
func Default() *Catalog {
	return New([]Product{
		{ID: "1", Name: "Wireless Headphones", Price: decimal.NewFromFloat(99.99), Description: "Premium noise-cancelling wireless headphones"},
		{ID: "2", Name: "Smart Watch", Price: decimal.NewFromFloat(149.99), Description: "Fitness tracking and notifications on your wrist"},
		{ID: "3", Name: "Bluetooth Speaker", Price: decimal.NewFromFloat(79.99), Description: "Portable speaker with amazing sound quality"},
		{ID: "4", Name: "Laptop Backpack", Price: decimal.NewFromFloat(49.99), Description: "Water-resistant backpack with laptop compartment"},
	})
}

func (c *Catalog) List() []Product {
	out := make([]Product, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *Catalog) Get(id string) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}
