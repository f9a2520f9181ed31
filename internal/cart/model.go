package cart

import (
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/catalog"
)

// Item is one cart line: a product and how many of it the user wants.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the per-user staging area for a future order. TotalAmount is
// always the derived sum over the lines; it is recomputed on every mutation
// and never stored independently of the items.
type Cart struct {
	UserID      string          `json:"user_id"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (c *Cart) recalcTotal() {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	c.TotalAmount = total
}

// copyOf returns a detached value copy so callers can never reach back into
// the store's state.
func (c *Cart) copyOf() Cart {
	out := Cart{UserID: c.UserID, TotalAmount: c.TotalAmount, Items: make([]Item, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}
