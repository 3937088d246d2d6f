package repository

import (
	"context"

	"product-api/internal/model"
)

// ProductRepository defines the interface for product data access operations.
// Lookups that match no row return a nil product and a nil error.
type ProductRepository interface {
	// ListAll retrieves every product ordered by ID.
	ListAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Insert stores a new product and returns it with its generated ID.
	Insert(ctx context.Context, in model.ProductInput) (*model.Product, error)

	// Update overwrites all mutable fields of a product and returns the
	// post-update row.
	Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error)

	// DeleteByID removes a product and returns the deleted row.
	DeleteByID(ctx context.Context, id int64) (*model.Product, error)
}
