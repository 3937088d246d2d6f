package service

import (
	"context"

	"product-api/internal/model"
)

// ProductService defines operations for product management. Errors are
// *model.DomainError values classified for the HTTP layer.
type ProductService interface {
	// List retrieves every product.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create validates payload and stores a new product.
	Create(ctx context.Context, payload map[string]any) (*model.Product, error)

	// Update validates payload and overwrites an existing product.
	Update(ctx context.Context, id int64, payload map[string]any) (*model.Product, error)

	// Delete removes a product and returns the deleted row.
	Delete(ctx context.Context, id int64) (*model.Product, error)
}
