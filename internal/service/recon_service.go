package service

import (
	"context"

	"plantkart/internal/order"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reconciliationService implements ReconciliationService by delegating to the
// totals validator and repair. Both operations report their outcome as a
// value; only transport-level concerns surface as Go errors above this layer.
type reconciliationService struct {
	validator *order.TotalsValidator
	repair    *order.TotalsRepair
	logger    zerolog.Logger
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	validator *order.TotalsValidator,
	repair *order.TotalsRepair,
	logger zerolog.Logger,
) ReconciliationService {
	return &reconciliationService{
		validator: validator,
		repair:    repair,
		logger:    logger.With().Str("service", "reconciliation").Logger(),
	}
}

// ValidateParent checks a parent order's totals against its children.
func (s *reconciliationService) ValidateParent(ctx context.Context, parentID uuid.UUID) *order.ValidationResult {
	result := s.validator.Validate(ctx, parentID)

	if !result.IsValid {
		s.logger.Warn().
			Str("parent_order_id", parentID.String()).
			Int("error_count", len(result.Errors)).
			Msg("totals validation found inconsistencies")
	}

	return result
}

// RepairOrder recomputes one order's item subtotals and its own subtotal.
func (s *reconciliationService) RepairOrder(ctx context.Context, orderID uuid.UUID) order.RepairResult {
	result := s.repair.Repair(ctx, orderID)

	if result.Success {
		s.logger.Info().
			Str("order_id", orderID.String()).
			Str("message", result.Message).
			Msg("order repaired")
	} else {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("message", result.Message).
			Msg("order repair failed")
	}

	return result
}
