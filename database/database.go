package database

import (
	"fmt"
	"log"
	"sync"

	"imaginify-backend/internal/domain/transactions"
	"imaginify-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Opener dials the backing store. Swapped out in tests.
type Opener func() (*gorm.DB, error)

// Provider memoizes a single connection. Concurrent first callers share
// one in-flight dial instead of racing to open several; the result
// (including a dial error) is retained for the life of the process.
type Provider struct {
	open Opener

	once sync.Once
	db   *gorm.DB
	err  error
}

func NewProvider(open Opener) *Provider {
	return &Provider{open: open}
}

// Get returns the memoized connection, dialing on first use.
func (p *Provider) Get() (*gorm.DB, error) {
	p.once.Do(func() {
		p.db, p.err = p.open()
	})
	if p.err != nil {
		return nil, fmt.Errorf("database connection failed: %w", p.err)
	}
	return p.db, nil
}

// MustGet is for startup paths where a dead database means the process
// should not serve at all.
func (p *Provider) MustGet() *gorm.DB {
	db, err := p.Get()
	if err != nil {
		log.Fatal("❌ ", err)
	}
	return db
}

// PostgresOpener connects with the given DSN and migrates the schema.
func PostgresOpener(dsn string) Opener {
	return func() (*gorm.DB, error) {
		if dsn == "" {
			return nil, fmt.Errorf("DB_URL not set")
		}

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			// Map unique-constraint violations to gorm.ErrDuplicatedKey
			// uniformly across drivers.
			TranslateError: true,
		})
		if err != nil {
			return nil, err
		}

		if err := Migrate(db); err != nil {
			return nil, err
		}

		fmt.Println("✅ Connected and migrated successfully")
		return db, nil
	}
}

// Migrate applies the schema for all domain models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&transactions.Transaction{},
	); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
