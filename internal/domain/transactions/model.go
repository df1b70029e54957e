package transactions

import (
	"time"

	"imaginify-backend/internal/domain/users"
)

// Transaction records one confirmed payment. StripeID uniqueness is what
// keeps a redelivered checkout event from granting credits twice.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StripeID string  `gorm:"not null;uniqueIndex:idx_transactions_stripe_id" json:"stripeId"`
	Amount   float64 `gorm:"not null" json:"amount"`

	Plan    string `json:"plan,omitempty"`
	Credits int    `json:"credits,omitempty"`

	BuyerID uint       `json:"buyerId"`
	Buyer   users.User `json:"buyer,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
