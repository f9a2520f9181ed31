package discount

import "time"

// Code is one ledger entry for a discount token. A code with an empty
// OwnerUserID was minted by an admin and is redeemable by any user; an owned
// code is visible only to its owner. Used flips false→true exactly once,
// together with OrderID and UsedAt.
type Code struct {
	Code        string     `json:"code"`
	Used        bool       `json:"used"`
	OwnerUserID string     `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	OrderID     string     `json:"order_id,omitempty"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}
