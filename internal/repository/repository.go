package repository

import (
	"context"

	"plantkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order (parent or child) within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves a single order by its ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetChildren retrieves the child orders of a parent, oldest first.
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]model.Order, error)

	// GetItems retrieves the normalized line items of an order.
	GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// GetParentsByUser retrieves a user's parent orders, newest first, paginated.
	GetParentsByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)

	// UpdateStatus writes a new status to a single order.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error

	// UpdateItemSubtotal writes a recomputed subtotal to a single line item.
	UpdateItemSubtotal(ctx context.Context, itemID uuid.UUID, subtotal float64) error

	// UpdateOrderSubtotal writes a recomputed subtotal to an order. The
	// total_amount column is updated to the same value so the two fields
	// stay in sync.
	UpdateOrderSubtotal(ctx context.Context, orderID uuid.UUID, subtotal float64) error
}

// MerchantRepository defines the interface for merchant lookups.
type MerchantRepository interface {
	// GetByCode retrieves a merchant by its code. Returns (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*model.Merchant, error)

	// GetAll retrieves all merchants with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Merchant, error)
}
