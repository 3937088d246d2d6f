// Package dbtest starts a disposable PostgreSQL for tests that need a real
// products table.
package dbtest

import (
	"context"
	"testing"
	"time"

	"product-api/internal/config"
	"product-api/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// Setup creates a PostgreSQL test container, opens a pool through
// database.NewPool and applies the schema. It skips the test under -short.
func Setup(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		SSLMode:         "disable",
		MaxConnections:  10,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.ApplySchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: container,
		Pool:      pool,
		Config:    cfg,
	}
}

// Reset removes all products and restarts id generation.
func (db *TestDB) Reset(t *testing.T) {
	t.Helper()

	if _, err := db.Pool.Exec(context.Background(), "TRUNCATE products RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to clean products table: %v", err)
	}
}

// Seed inserts products directly and returns their ids in insertion order.
func (db *TestDB) Seed(t *testing.T, rows ...SeedRow) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		var id int64
		err := db.Pool.QueryRow(context.Background(),
			"INSERT INTO products (name, price, stock) VALUES ($1, $2, $3) RETURNING id",
			row.Name, row.Price, row.Stock,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %q: %v", row.Name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// SeedRow is a product row inserted by Seed. Price is NUMERIC text.
type SeedRow struct {
	Name  string
	Price string
	Stock int
}
