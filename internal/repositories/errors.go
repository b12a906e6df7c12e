package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound matches every *ProductNotFoundError.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct matches every *DuplicateProductError.
	ErrDuplicateProduct = errors.New("duplicate product")
	// ErrInternal is the only thing callers see of an unexpected store failure.
	ErrInternal = errors.New("unexpected error, check server logs")
	// ErrUserNotFound is returned by user lookups that match nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when an email is already registered.
	ErrDuplicateUser = errors.New("email already registered")
)

// ProductNotFoundError reports the term or id that matched no product.
type ProductNotFoundError struct {
	Term string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %q not found", e.Term)
}

// Is lets errors.Is match ErrProductNotFound.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// DuplicateProductError reports a title or slug uniqueness violation.
type DuplicateProductError struct {
	Title string
	Slug  string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("product with title %q or slug %q already exists", e.Title, e.Slug)
}

// Is lets errors.Is match ErrDuplicateProduct.
func (e *DuplicateProductError) Is(target error) bool {
	return target == ErrDuplicateProduct
}
