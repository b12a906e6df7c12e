package repositories

import (
	"context"

	"catalog/internal/models"
)

// DefaultPageSize is used when a listing does not ask for a page size.
const DefaultPageSize = 10

// Pagination selects a window of products in insertion order.
type Pagination struct {
	Limit  int `query:"limit" validate:"omitempty,gte=0"`
	Offset int `query:"offset" validate:"omitempty,gte=0"`
}

// Normalize applies the listing defaults.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, fields models.ProductFields, owner *models.User) (*models.Product, error)
	FindMany(ctx context.Context, page Pagination) ([]models.Product, error)
	FindOne(ctx context.Context, term string) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch, owner *models.User) (*models.Product, error)
	Remove(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
