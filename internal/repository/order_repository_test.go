package repository

import (
	"context"
	"testing"
	"time"

	"plantkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and returns a connected pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed repository test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createOrderSchema creates the order-related database schema for testing.
func createOrderSchema(t *testing.T, pool *pgxpool.Pool) {
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
	require.NoError(t, err)
}

// setupOrderTestDB creates a test database with the order schema.
func setupOrderTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	pool, cleanup := setupTestDB(t)
	createOrderSchema(t, pool)
	return pool, cleanup
}

// insertTestOrder creates and commits a single order outside any test transaction.
func insertTestOrder(t *testing.T, repo OrderRepository, order *model.Order) {
	t.Helper()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Commit(ctx))
}

func newTestOrder(userID, merchantCode string, parentID *uuid.UUID, total float64) *model.Order {
	now := time.Now()
	id := uuid.New()
	return &model.Order{
		ID:            id,
		OrderCode:     "PK-" + id.String()[:8],
		ParentOrderID: parentID,
		MerchantCode:  merchantCode,
		UserID:        userID,
		TotalAmount:   total,
		Subtotal:      total,
		Status:        model.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderRepository_CreateAndGetByID(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	quotation := "QT-2024-001"
	order := newTestOrder("user-1", model.MerchantCodeParent, nil, 900.00)
	order.QuotationCode = &quotation

	insertTestOrder(t, repo, order)

	got, err := repo.GetByID(ctx, order.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.OrderCode, got.OrderCode)
	assert.Nil(t, got.ParentOrderID)
	assert.Equal(t, model.MerchantCodeParent, got.MerchantCode)
	assert.Equal(t, 900.00, got.TotalAmount)
	assert.Equal(t, 900.00, got.Subtotal)
	assert.Equal(t, model.StatusPending, got.Status)
	require.NotNil(t, got.QuotationCode)
	assert.Equal(t, quotation, *got.QuotationCode)
	assert.True(t, got.IsParent())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	got, err := repo.GetByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_GetChildren(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	parent := newTestOrder("user-1", model.MerchantCodeParent, nil, 900.00)
	insertTestOrder(t, repo, parent)

	childA := newTestOrder("user-1", "greenleaf", &parent.ID, 500.00)
	childB := newTestOrder("user-1", "rosehaven", &parent.ID, 400.00)
	childB.CreatedAt = childA.CreatedAt.Add(time.Second)
	insertTestOrder(t, repo, childA)
	insertTestOrder(t, repo, childB)

	// Unrelated order must not leak in
	insertTestOrder(t, repo, newTestOrder("user-2", "greenleaf", nil, 100.00))

	children, err := repo.GetChildren(ctx, parent.ID)

	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, childA.ID, children[0].ID)
	assert.Equal(t, childB.ID, children[1].ID)
	assert.Equal(t, "greenleaf", children[0].MerchantCode)
	assert.Equal(t, "rosehaven", children[1].MerchantCode)
}

func TestOrderRepository_CreateAndGetItems(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := newTestOrder("user-1", "greenleaf", nil, 750.00)

	unitPrice := 250.00
	legacyPrice := 125.00
	variety := "Alphonso"
	items := []model.OrderItem{
		{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: "PLT-001",
			Name:      "Mango Sapling",
			Quantity:  2,
			UnitPrice: &unitPrice,
			Subtotal:  500.00,
			Variety:   &variety,
		},
		{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: "PLT-002",
			Name:      "Tulsi",
			Quantity:  2,
			Price:     &legacyPrice, // legacy row, no unit_price
			Subtotal:  250.00,
		},
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetItems(ctx, order.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)

	byProduct := map[string]model.OrderItem{}
	for _, item := range got {
		byProduct[item.ProductID] = item
	}

	first := byProduct["PLT-001"]
	require.NotNil(t, first.UnitPrice)
	assert.Equal(t, 250.00, *first.UnitPrice)
	assert.Nil(t, first.Price)
	assert.Equal(t, 500.00, first.Subtotal)
	require.NotNil(t, first.Variety)
	assert.Equal(t, "Alphonso", *first.Variety)

	second := byProduct["PLT-002"]
	assert.Nil(t, second.UnitPrice)
	require.NotNil(t, second.Price)
	assert.Equal(t, 125.00, *second.Price)
	assert.Equal(t, 125.00, second.EffectiveUnitPrice())
}

func TestOrderRepository_CreateOrderItems_Empty(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.CreateOrderItems(ctx, tx, []model.OrderItem{})
	assert.NoError(t, err)
}

func TestOrderRepository_GetParentsByUser(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	older := newTestOrder("user-1", model.MerchantCodeParent, nil, 100.00)
	newer := newTestOrder("user-1", model.MerchantCodeParent, nil, 200.00)
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	insertTestOrder(t, repo, older)
	insertTestOrder(t, repo, newer)

	// A child of the older order must be excluded from the listing.
	insertTestOrder(t, repo, newTestOrder("user-1", "greenleaf", &older.ID, 100.00))

	orders, err := repo.GetParentsByUser(ctx, "user-1", 10, 0)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID, "newest first")
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := newTestOrder("user-1", "greenleaf", nil, 100.00)
	insertTestOrder(t, repo, order)

	err := repo.UpdateStatus(ctx, order.ID, model.StatusShipped)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, got.Status)

	// Unknown id reports an error instead of silently affecting zero rows.
	err = repo.UpdateStatus(ctx, uuid.New(), model.StatusShipped)
	assert.Error(t, err)
}

func TestOrderRepository_UpdateOrderSubtotal_SyncsTotalAmount(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := newTestOrder("user-1", "greenleaf", nil, 100.00)
	insertTestOrder(t, repo, order)

	err := repo.UpdateOrderSubtotal(ctx, order.ID, 275.50)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 275.50, got.Subtotal)
	assert.Equal(t, 275.50, got.TotalAmount)
}

func TestOrderRepository_UpdateItemSubtotal(t *testing.T) {
	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := newTestOrder("user-1", "greenleaf", nil, 100.00)
	unitPrice := 50.00
	item := model.OrderItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: "PLT-001",
		Name:      "Snake Plant",
		Quantity:  2,
		UnitPrice: &unitPrice,
		Subtotal:  90.00, // wrong on purpose
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, []model.OrderItem{item}))
	require.NoError(t, tx.Commit(ctx))

	err = repo.UpdateItemSubtotal(ctx, item.ID, 100.00)
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 100.00, items[0].Subtotal)

	err = repo.UpdateItemSubtotal(ctx, uuid.New(), 100.00)
	assert.Error(t, err)
}
