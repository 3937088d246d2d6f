package service

import (
	"context"
	"fmt"

	"product-api/internal/model"
	"product-api/internal/repository"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, model.NewStoreError(fmt.Errorf("failed to list products: %w", err))
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewStoreError(fmt.Errorf("failed to get product: %w", err))
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates payload and stores a new product.
func (s *productService) Create(ctx context.Context, payload map[string]any) (*model.Product, error) {
	in, err := s.validate(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Insert(ctx, in)
	if err != nil {
		return nil, model.NewStoreError(fmt.Errorf("failed to create product: %w", err))
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update validates payload, checks the product exists and overwrites it.
func (s *productService) Update(ctx context.Context, id int64, payload map[string]any) (*model.Product, error) {
	in, err := s.validate(payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, in)
	if err != nil {
		return nil, model.NewStoreError(fmt.Errorf("failed to update product: %w", err))
	}

	// Deleted between the existence check and the write.
	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product vanished before update")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product and returns the deleted row.
func (s *productService) Delete(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, model.NewStoreError(fmt.Errorf("failed to delete product: %w", err))
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return product, nil
}

func (s *productService) validate(payload map[string]any) (model.ProductInput, error) {
	res := validation.ValidateProduct(payload)
	if !res.Valid {
		s.logger.Debug().Strs("errors", res.Errors).Msg("product payload rejected")
		return model.ProductInput{}, model.NewValidationError(res.Errors)
	}

	return model.ProductInput{
		Name:  res.Name,
		Price: res.Price,
		Stock: res.Stock,
	}, nil
}
