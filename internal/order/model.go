package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/cart"
)

// Order is the immutable record of one completed purchase. Items is a
// snapshot of the cart at checkout time; OrderNumber is 1-based and unique
// per user.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	UserID         string          `json:"user_id"`
	Items          []cart.Item     `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountCode   string          `json:"discount_code,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	OrderNumber    int             `json:"order_number"`
}

// UserStats is the incrementally maintained per-user aggregate. It is
// updated under the same lock as the order append, so it never drifts from
// the ledger's own projection.
type UserStats struct {
	UserID        string          `json:"user_id"`
	OrderCount    int             `json:"order_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate time.Time       `json:"last_order_date"`
}

// Stats is the on-demand projection over the whole ledger.
type Stats struct {
	TotalOrders         int             `json:"total_orders"`
	TotalItemsPurchased int             `json:"total_items_purchased"`
	TotalPurchaseAmount decimal.Decimal `json:"total_purchase_amount"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount"`
	UserStats           []UserStats     `json:"user_stats"`
}
