package repository

import (
	"context"
	"fmt"

	"imaginify-backend/internal/domain/transactions"
	"imaginify-backend/internal/domain/users"

	"gorm.io/gorm"
)

// Transactions records confirmed payments and grants the purchased
// credits. Credit balance is only ever mutated here, never by the
// identity-sync flow.
type Transactions interface {
	// CreateAndCredit writes the transaction and applies its credit
	// grant to the buyer in one database transaction. A reused stripe
	// id fails with ErrDuplicateKey before any credits move.
	CreateAndCredit(ctx context.Context, txn *transactions.Transaction) error
	ListByBuyer(ctx context.Context, buyerID uint) ([]transactions.Transaction, error)
}

type transactionsRepository struct {
	db *gorm.DB
}

func NewTransactions(db *gorm.DB) Transactions {
	return &transactionsRepository{db: db}
}

func (r *transactionsRepository) CreateAndCredit(ctx context.Context, txn *transactions.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		if txn.Credits == 0 {
			return nil
		}
		res := tx.Model(&users.User{}).
			Where("id = ?", txn.BuyerID).
			Update("credit_balance", gorm.Expr("credit_balance + ?", txn.Credits))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record transaction: %w", translate(err))
	}
	return nil
}

func (r *transactionsRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]transactions.Transaction, error) {
	var txns []transactions.Transaction
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", translate(err))
	}
	return txns, nil
}
