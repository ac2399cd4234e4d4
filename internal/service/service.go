package service

import (
	"context"

	"plantkart/internal/model"
	"plantkart/internal/order"

	"github.com/google/uuid"
)

// OrderService defines operations for order management.
type OrderService interface {
	// PlaceOrder creates a parent order and its per-merchant child orders
	// from a checkout request, in a single transaction.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error)

	// ListByUser retrieves a user's parent orders with aggregated child
	// statuses, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.OrderSummary, error)

	// GetDetail retrieves an order with its merchant-grouped children and
	// aggregated status.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)

	// UpdateStatus sets the fulfilment status of a single order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
}

// ReconciliationService defines the admin-facing totals consistency operations.
type ReconciliationService interface {
	// ValidateParent checks a parent order's totals against its children.
	ValidateParent(ctx context.Context, parentID uuid.UUID) *order.ValidationResult

	// RepairOrder recomputes one order's item subtotals and its own subtotal.
	RepairOrder(ctx context.Context, orderID uuid.UUID) order.RepairResult
}
