package repository

import (
	"context"
	"errors"
	"fmt"

	"imaginify-backend/internal/domain/users"

	"gorm.io/gorm"
)

// Users is the data-access surface for identity-provider-synced accounts.
type Users interface {
	Create(ctx context.Context, user *users.User) error
	UpdateByClerkID(ctx context.Context, clerkID string, patch users.ProfilePatch) (*users.User, error)
	// DeleteByClerkID is idempotent: deleting an absent user returns
	// (nil, nil), not an error.
	DeleteByClerkID(ctx context.Context, clerkID string) (*users.User, error)
	FindByClerkID(ctx context.Context, clerkID string) (*users.User, error)
}

type usersRepository struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) Users {
	return &usersRepository{db: db}
}

func (r *usersRepository) Create(ctx context.Context, user *users.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (r *usersRepository) UpdateByClerkID(ctx context.Context, clerkID string, patch users.ProfilePatch) (*users.User, error) {
	// Explicit column map so zero values ("" names) are written too,
	// and so billing columns can never leak into the update.
	updates := map[string]interface{}{
		"first_name": patch.FirstName,
		"last_name":  patch.LastName,
		"user_name":  patch.UserName,
		"photo":      patch.Photo,
	}

	res := r.db.WithContext(ctx).
		Model(&users.User{}).
		Where("clerk_id = ?", clerkID).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update user %s: %w", clerkID, ErrNotFound)
	}

	return r.FindByClerkID(ctx, clerkID)
}

func (r *usersRepository) DeleteByClerkID(ctx context.Context, clerkID string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", translate(err))
	}

	if err := r.db.WithContext(ctx).Delete(&user).Error; err != nil {
		return nil, fmt.Errorf("delete user: %w", translate(err))
	}
	return &user, nil
}

func (r *usersRepository) FindByClerkID(ctx context.Context, clerkID string) (*users.User, error) {
	var user users.User
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", translate(err))
	}
	return &user, nil
}
