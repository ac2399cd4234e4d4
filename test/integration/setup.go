package integration

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
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

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS merchants (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_code TEXT NOT NULL UNIQUE,
			parent_order_id UUID REFERENCES orders(id) ON DELETE CASCADE,
			merchant_code TEXT NOT NULL,
			user_id TEXT NOT NULL,
			total_amount DECIMAL(12,2),
			subtotal DECIMAL(12,2),
			status TEXT NOT NULL DEFAULT 'pending',
			cart_items TEXT,
			delivery_address TEXT,
			quotation_code TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_orders_parent ON orders(parent_order_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			name TEXT NOT NULL,
			image_url TEXT,
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(12,2),
			price DECIMAL(12,2),
			subtotal DECIMAL(12,2),
			variety TEXT,
			pot_size TEXT,
			grafted BOOLEAN
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB removes all rows between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, "DELETE FROM order_items; DELETE FROM orders; DELETE FROM merchants;")
	if err != nil {
		t.Fatalf("failed to clean up database: %v", err)
	}
}

// SeedMerchants inserts the test merchant records.
func SeedMerchants(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	merchants := []struct {
		code string
		name string
	}{
		{"greenleaf", "GreenLeaf Gardens"},
		{"rosehaven", "Rose Haven"},
		{"palmgrove", "Palm Grove Nursery"},
	}

	for _, m := range merchants {
		_, err := pool.Exec(ctx,
			`INSERT INTO merchants (id, code, name, email, phone, address)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), m.code, m.name, m.code+"@plantkart.in", "9000000000", "Bengaluru",
		)
		if err != nil {
			t.Fatalf("failed to seed merchant %s: %v", m.code, err)
		}
	}
}

// WritePincodeFile writes a gzipped pincode file into a temp dir and returns
// its path.
func WritePincodeFile(t *testing.T, pincodes []string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "serviceable.gz")

	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("failed to create pincode file: %v", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, pincode := range pincodes {
		if _, err := gzipWriter.Write([]byte(pincode + "\n")); err != nil {
			t.Fatalf("failed to write pincode: %v", err)
		}
	}

	return filePath
}
