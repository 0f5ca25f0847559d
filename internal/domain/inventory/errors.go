package inventory

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrInventory is the common category of inventory failures. Every error
	// type in this package except NotFoundError matches it with errors.Is.
	ErrInventory = errors.New("inventory error")
	// ErrNotFound is matched by NotFoundError.
	ErrNotFound = errors.New("product not found")
)

// InsufficientStockError indicates a sale larger than the available stock.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInventory }

// DuplicateProductError indicates that a product id is already taken.
type DuplicateProductError struct {
	ID string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("product with id %s already exists in inventory", e.ID)
}

func (e *DuplicateProductError) Is(target error) bool { return target == ErrInventory }

// InvalidProductDataError indicates a malformed persisted record or file.
type InvalidProductDataError struct {
	Detail string
	Err    error
}

func (e *InvalidProductDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid product data: %s: %v", e.Detail, e.Err)
	}
	return "invalid product data: " + e.Detail
}

func (e *InvalidProductDataError) Unwrap() error { return e.Err }

func (e *InvalidProductDataError) Is(target error) bool { return target == ErrInventory }

// InvalidArgumentError indicates a rejected mutation: non-positive quantity,
// amount or price, or a constructor field outside its allowed range.
type InvalidArgumentError struct {
	Detail string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Detail
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInventory }

// NotFoundError indicates an operation referenced an unknown product id.
// It is a lookup failure, not part of the ErrInventory category.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func invalidData(format string, args ...any) *InvalidProductDataError {
	return &InvalidProductDataError{Detail: fmt.Sprintf(format, args...)}
}
