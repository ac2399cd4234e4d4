package order

import (
	"context"
	"fmt"

	"plantkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RepairResult is the outcome of a totals repair. Like ValidationResult it
// is a plain value; failures are reported in Message, not thrown.
type RepairResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func repairFailure(format string, args ...any) RepairResult {
	return RepairResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

// TotalsRepair recomputes authoritative line subtotals from quantity x unit
// price and persists them, then rewrites the order's own subtotal from the
// repaired lines. It operates on a single order only: repairing a child does
// not re-derive the parent's total against its siblings. Run the validator
// afterwards to check the parent sum.
type TotalsRepair struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewTotalsRepair creates a new totals repair.
func NewTotalsRepair(orders repository.OrderRepository, logger zerolog.Logger) *TotalsRepair {
	return &TotalsRepair{
		orders: orders,
		logger: logger.With().Str("component", "totals-repair").Logger(),
	}
}

// Repair fixes one order's item subtotals and its own subtotal. The item
// writes and the final order write are separate statements; a failure part
// way through leaves earlier writes in place and is reported as-is.
func (r *TotalsRepair) Repair(ctx context.Context, orderID uuid.UUID) RepairResult {
	ord, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return repairFailure("failed to fetch order %s: %v", orderID, err)
	}
	if ord == nil {
		return repairFailure("order %s not found", orderID)
	}

	items, err := r.orders.GetItems(ctx, orderID)
	if err != nil {
		return repairFailure("failed to fetch items for order %s: %v", orderID, err)
	}

	var orderSubtotal float64
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 0 {
			quantity = 0
		}
		correct := float64(quantity) * item.EffectiveUnitPrice()

		if err := r.orders.UpdateItemSubtotal(ctx, item.ID, correct); err != nil {
			return repairFailure("failed to update subtotal for item %s: %v", item.ID, err)
		}
		orderSubtotal += correct
	}

	if err := r.orders.UpdateOrderSubtotal(ctx, orderID, orderSubtotal); err != nil {
		return repairFailure("failed to update subtotal for order %s: %v", orderID, err)
	}

	r.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_code", ord.OrderCode).
		Int("items_repaired", len(items)).
		Float64("subtotal", orderSubtotal).
		Msg("order totals repaired")

	return RepairResult{
		Success: true,
		Message: fmt.Sprintf("repaired %d items; order subtotal set to %.2f", len(items), orderSubtotal),
	}
}
