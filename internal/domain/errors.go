package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTerminal    = errors.New("terminal not found or not active")
	ErrPaymentMismatch    = errors.New("payments do not sum to the sale total")
	ErrDuplicateRequest   = errors.New("duplicate request")
)

// InsufficientStockError reports which line of a sale is short.
// errors.Is(err, ErrInsufficientStock) holds for callers that only care
// about the category.
type InsufficientStockError struct {
	ItemID    string
	SKU       string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s (%s): requested %d, available %d",
		e.ItemID, e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
