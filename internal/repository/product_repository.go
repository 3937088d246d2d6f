package repository

import (
	"context"
	"errors"
	"fmt"

	"product-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const productColumns = "id, name, price, stock"

var tracer = otel.Tracer("product-api/repository")

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// ListAll retrieves every product ordered by ID.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.ListAll")
	defer span.End()

	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, recordErr(span, fmt.Errorf("failed to query products: %w", err))
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, recordErr(span, fmt.Errorf("failed to scan product: %w", err))
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, recordErr(span, fmt.Errorf("error iterating products: %w", err))
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.GetByID",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := r.queryOne(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, recordErr(span, fmt.Errorf("failed to query product: %w", err))
	}
	if p == nil {
		r.logger.Debug().Int64("product_id", id).Msg("product not found")
	}

	return p, nil
}

// Insert stores a new product and returns it with its generated ID.
func (r *productRepository) Insert(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()

	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING ` + productColumns

	p, err := r.queryOne(ctx, query, in.Name, priceArg(in), in.Stock)
	if err != nil {
		r.logger.Error().Err(err).Str("name", in.Name).Msg("failed to insert product")
		return nil, recordErr(span, fmt.Errorf("failed to insert product: %w", err))
	}
	if p == nil {
		// INSERT ... RETURNING always yields a row on success.
		return nil, recordErr(span, errors.New("failed to insert product: no row returned"))
	}

	span.SetAttributes(attribute.Int64("product.id", p.ID))
	r.logger.Debug().Int64("product_id", p.ID).Msg("product inserted")

	return p, nil
}

// Update overwrites all mutable fields of a product and returns the
// post-update row.
func (r *productRepository) Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.Update",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	query := `
		UPDATE products
		SET name = $2, price = $3, stock = $4
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := r.queryOne(ctx, query, id, in.Name, priceArg(in), in.Stock)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, recordErr(span, fmt.Errorf("failed to update product: %w", err))
	}
	if p == nil {
		r.logger.Debug().Int64("product_id", id).Msg("no product to update")
	}

	return p, nil
}

// DeleteByID removes a product and returns the deleted row.
func (r *productRepository) DeleteByID(ctx context.Context, id int64) (*model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.DeleteByID",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	query := `
		DELETE FROM products
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := r.queryOne(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, recordErr(span, fmt.Errorf("failed to delete product: %w", err))
	}
	if p == nil {
		r.logger.Debug().Int64("product_id", id).Msg("no product to delete")
	}

	return p, nil
}

// queryOne runs a statement returning at most one product row.
func (r *productRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// priceArg sends the price as text so it reaches NUMERIC without a float
// conversion.
func priceArg(in model.ProductInput) string {
	return in.Price.StringFixed(2)
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
