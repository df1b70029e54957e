package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey reports a unique-constraint violation
	// (clerk id, email, user name, stripe id).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound reports that no record matched the given key.
	ErrNotFound = errors.New("record not found")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
