package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable classifies every failure of the remote collection or
	// its change feed. The wrapped cause is kept for logs.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
