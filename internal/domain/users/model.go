package users

import "time"

// User mirrors the identity provider's record for a Clerk account. The
// provider is the source of truth for identity fields; billing fields are
// owned by transaction processing and must not be written by the webhook
// sync flow.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClerkID  string `gorm:"not null;uniqueIndex:idx_users_clerk_id" json:"clerkId"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	UserName string `gorm:"not null;uniqueIndex:idx_users_user_name" json:"userName"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Photo     string `json:"photo"`

	PlanID        int `gorm:"not null;default:1" json:"planId"`
	CreditBalance int `gorm:"not null;default:10" json:"creditBalance"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfilePatch is the subset of fields the identity provider may rewrite
// on user.updated. Credit balance and plan are deliberately absent.
type ProfilePatch struct {
	FirstName string
	LastName  string
	UserName  string
	Photo     string
}
