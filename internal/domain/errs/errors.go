// Package errs holds the error taxonomy shared by the domain services.
// The HTTP layer maps these to status codes with errors.Is; anything it
// does not recognize is treated as an internal failure.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when no principal is present at all.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal's role does not permit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for malformed or out-of-range fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSKU is returned when a sparepart SKU collides with an existing one.
	ErrDuplicateSKU = errors.New("sku already in use")

	// ErrInsufficientStock is returned when an OUT movement would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrHasMovements is returned when deleting a sparepart that still has ledger history.
	ErrHasMovements = errors.New("sparepart has movement history")
)

// InsufficientStockError carries the shortfall details for an OUT rejection.
type InsufficientStockError struct {
	SparepartID int64
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IsClientError reports whether the error is attributable to the caller,
// i.e. expected and recoverable rather than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateSKU) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrHasMovements)
}
