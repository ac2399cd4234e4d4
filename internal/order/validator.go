package order

import (
	"context"
	"fmt"

	"plantkart/internal/model"
	"plantkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ValidationResult is the outcome of a totals consistency check. It is a
// plain value: repository failures and invariant violations both land in
// Errors, never in a returned Go error, so callers can render it directly.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// TotalsValidator checks the arithmetic consistency of a split order: the
// parent total against the sum of child subtotals, the parent's own
// subtotal/total agreement, and every child item's quantity x price.
type TotalsValidator struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewTotalsValidator creates a new totals validator.
func NewTotalsValidator(orders repository.OrderRepository, logger zerolog.Logger) *TotalsValidator {
	return &TotalsValidator{
		orders: orders,
		logger: logger.With().Str("component", "totals-validator").Logger(),
	}
}

// Validate checks a parent order and all of its children. Invariant
// violations accumulate; a repository read failure short-circuits with a
// single error entry. The check is read-only.
func (v *TotalsValidator) Validate(ctx context.Context, parentID uuid.UUID) *ValidationResult {
	result := &ValidationResult{Errors: []string{}, Warnings: []string{}}

	parent, err := v.orders.GetByID(ctx, parentID)
	if err != nil {
		result.addError("failed to fetch order %s: %v", parentID, err)
		return result
	}
	if parent == nil {
		result.addError("order %s not found", parentID)
		return result
	}
	if !parent.IsParent() {
		result.addError("order %s (%s) is not a parent order", parentID, parent.OrderCode)
		return result
	}

	children, err := v.orders.GetChildren(ctx, parentID)
	if err != nil {
		result.addError("failed to fetch child orders of %s: %v", parentID, err)
		return result
	}

	var childSum float64
	for _, child := range children {
		childSum += child.Subtotal
	}

	if !withinTolerance(parent.TotalAmount, childSum) {
		result.addError(
			"parent total %.2f does not match sum of child subtotals %.2f",
			parent.TotalAmount, childSum,
		)
	}

	if !withinTolerance(parent.Subtotal, parent.TotalAmount) {
		result.addError(
			"parent subtotal %.2f does not match total_amount %.2f",
			parent.Subtotal, parent.TotalAmount,
		)
	}

	for _, child := range children {
		if ok := v.validateItems(ctx, &child, result); !ok {
			break
		}
	}

	result.IsValid = len(result.Errors) == 0

	v.logger.Debug().
		Str("parent_order_id", parentID.String()).
		Int("children", len(children)).
		Bool("is_valid", result.IsValid).
		Int("error_count", len(result.Errors)).
		Msg("totals validation completed")

	return result
}

// validateItems checks quantity x unit price against the stored subtotal for
// every item of one child. Returns false when a repository failure should
// stop the remaining child checks.
func (v *TotalsValidator) validateItems(ctx context.Context, child *model.Order, result *ValidationResult) bool {
	items, err := v.orders.GetItems(ctx, child.ID)
	if err != nil {
		result.addError("failed to fetch items for order %s: %v", child.ID, err)
		return false
	}

	for _, item := range items {
		expected := float64(item.Quantity) * item.EffectiveUnitPrice()
		if !withinTolerance(expected, item.Subtotal) {
			result.addError(
				"item %s: subtotal %.2f does not match quantity x unit price %.2f",
				item.ID, item.Subtotal, expected,
			)
		}
	}

	return true
}
