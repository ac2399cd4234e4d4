package order

import (
	"context"

	"plantkart/internal/model"
	"plantkart/internal/repository"

	"github.com/rs/zerolog"
)

// SplitView assembles the merchant-grouped presentation of a split order:
// children grouped by merchant code, decorated with merchant contact info
// and per-merchant totals and item breakdowns.
type SplitView struct {
	orders    repository.OrderRepository
	merchants repository.MerchantRepository
	logger    zerolog.Logger
}

// NewSplitView creates a new split view builder.
func NewSplitView(orders repository.OrderRepository, merchants repository.MerchantRepository, logger zerolog.Logger) *SplitView {
	return &SplitView{
		orders:    orders,
		merchants: merchants,
		logger:    logger.With().Str("component", "split-view").Logger(),
	}
}

// Build groups the given child orders by merchant code, preserving the order
// in which each code first appears. Merchant lookups never fail the view: a
// reserved platform code gets the fixed platform record, and an unresolvable
// code gets a placeholder.
func (s *SplitView) Build(ctx context.Context, children []model.Order) []model.MerchantGroup {
	groups := []model.MerchantGroup{}
	index := map[string]int{}

	for _, child := range children {
		code := child.MerchantCode

		i, ok := index[code]
		if !ok {
			i = len(groups)
			index[code] = i
			groups = append(groups, model.MerchantGroup{
				MerchantCode: code,
				Merchant:     s.resolveMerchant(ctx, code),
				Orders:       []model.SplitOrder{},
			})
		}

		groups[i].Orders = append(groups[i].Orders, model.SplitOrder{
			Order: child,
			Items: s.itemsFor(ctx, &child),
		})
		groups[i].MerchantTotal += child.TotalAmount
	}

	return groups
}

// resolveMerchant fetches display info for a merchant code. Platform
// sentinels never hit the repository.
func (s *SplitView) resolveMerchant(ctx context.Context, code string) model.Merchant {
	if model.IsPlatformCode(code) {
		return model.PlatformMerchant()
	}

	merchant, err := s.merchants.GetByCode(ctx, code)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("merchant_code", code).
			Msg("merchant lookup failed, using placeholder")
		return model.PlaceholderMerchant(code)
	}
	if merchant == nil {
		s.logger.Warn().
			Str("merchant_code", code).
			Msg("merchant code not found, using placeholder")
		return model.PlaceholderMerchant(code)
	}

	return *merchant
}

// itemsFor fetches and flattens one child's line items. A fetch failure
// degrades to the legacy blob (or an empty list) instead of failing the view.
func (s *SplitView) itemsFor(ctx context.Context, child *model.Order) []model.DisplayItem {
	items, err := s.orders.GetItems(ctx, child.ID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", child.ID.String()).
			Msg("failed to fetch order items, falling back to cart blob")
		items = nil
	}

	return DisplayItems(child, items, s.logger)
}
