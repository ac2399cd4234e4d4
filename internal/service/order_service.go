package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"plantkart/internal/delivery"
	"plantkart/internal/model"
	"plantkart/internal/order"
	"plantkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	splitView *order.SplitView
	checker   delivery.Checker
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	splitView *order.SplitView,
	checker delivery.Checker,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		splitView: splitView,
		checker:   checker,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// merchantLines is one merchant's slice of a checkout cart.
type merchantLines struct {
	code  string
	lines []model.CartLine
}

// PlaceOrder creates a parent order and its per-merchant child orders from a
// checkout request, in a single transaction.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error) {
	if err := s.validatePlaceOrderRequest(req); err != nil {
		return nil, err
	}

	if err := s.checker.CheckServiceability(ctx, req.DeliveryAddress.Pincode); err != nil {
		s.logger.Warn().
			Str("pincode", req.DeliveryAddress.Pincode).
			Err(err).
			Msg("delivery serviceability check failed")
		return nil, err
	}

	groups := groupByMerchant(req.Items)

	var grandTotal float64
	for _, line := range req.Items {
		grandTotal += float64(line.Quantity) * line.UnitPrice
	}

	addressJSON, err := json.Marshal(req.DeliveryAddress)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode delivery address")
		return nil, fmt.Errorf("failed to encode delivery address: %w", err)
	}
	address := string(addressJSON)

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	parent := &model.Order{
		ID:              uuid.New(),
		OrderCode:       newOrderCode(),
		MerchantCode:    model.MerchantCodeParent,
		UserID:          req.UserID,
		TotalAmount:     grandTotal,
		Subtotal:        grandTotal,
		Status:          model.StatusPending,
		DeliveryAddress: &address,
		QuotationCode:   req.QuotationCode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, parent); err != nil {
		s.logger.Error().Err(err).Str("order_id", parent.ID.String()).Msg("failed to create parent order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	children := make([]model.Order, 0, len(groups))
	for _, group := range groups {
		var childSubtotal float64
		for _, line := range group.lines {
			childSubtotal += float64(line.Quantity) * line.UnitPrice
		}

		child := model.Order{
			ID:              uuid.New(),
			OrderCode:       parent.OrderCode + "-" + strings.ToUpper(group.code),
			ParentOrderID:   &parent.ID,
			MerchantCode:    group.code,
			UserID:          req.UserID,
			TotalAmount:     childSubtotal,
			Subtotal:        childSubtotal,
			Status:          model.StatusPending,
			DeliveryAddress: &address,
			QuotationCode:   req.QuotationCode,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err = s.orderRepo.CreateOrder(ctx, tx, &child); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", child.ID.String()).
				Str("merchant_code", group.code).
				Msg("failed to create child order")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}

		items := make([]model.OrderItem, len(group.lines))
		for i, line := range group.lines {
			unitPrice := line.UnitPrice
			items[i] = model.OrderItem{
				ID:        uuid.New(),
				OrderID:   child.ID,
				ProductID: line.ProductID,
				Name:      line.Name,
				ImageURL:  line.ImageURL,
				Quantity:  line.Quantity,
				UnitPrice: &unitPrice,
				Subtotal:  float64(line.Quantity) * line.UnitPrice,
				Variety:   line.Variety,
				PotSize:   line.PotSize,
				Grafted:   line.Grafted,
			}
		}

		if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", child.ID.String()).
				Int("item_count", len(items)).
				Msg("failed to create order items")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}

		children = append(children, child)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", parent.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", parent.ID.String()).
		Str("order_code", parent.OrderCode).
		Int("child_count", len(children)).
		Float64("total_amount", grandTotal).
		Msg("order placed successfully")

	return &model.PlaceOrderResponse{
		OrderID:     parent.ID,
		OrderCode:   parent.OrderCode,
		TotalAmount: grandTotal,
		Children:    children,
	}, nil
}

// ListByUser retrieves a user's parent orders with aggregated child statuses,
// newest first.
func (s *orderService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.OrderSummary, error) {
	parents, err := s.orderRepo.GetParentsByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]model.OrderSummary, 0, len(parents))
	for i := range parents {
		parent := parents[i]

		children, err := s.orderRepo.GetChildren(ctx, parent.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", parent.ID.String()).
				Msg("failed to fetch child orders")
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}

		statuses := order.ChildStatuses(&parent, children)

		summaries = append(summaries, model.OrderSummary{
			Order:           parent,
			AggregateStatus: order.AggregateStatus(statuses),
			StatusLabel:     order.AggregateLabel(statuses),
			ChildCount:      len(children),
		})
	}

	return summaries, nil
}

// GetDetail retrieves an order with its merchant-grouped children and
// aggregated status. An unsplit order is rendered as a single group of itself.
func (s *orderService) GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	ord, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if ord == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	children, err := s.orderRepo.GetChildren(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to fetch child orders")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	grouped := children
	if len(grouped) == 0 {
		grouped = []model.Order{*ord}
	}

	statuses := order.ChildStatuses(ord, children)

	return &model.OrderDetail{
		Order:           *ord,
		AggregateStatus: order.AggregateStatus(statuses),
		StatusLabel:     order.AggregateLabel(statuses),
		Groups:          s.splitView.Build(ctx, grouped),
	}, nil
}

// UpdateStatus sets the fulfilment status of a single order.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	if !status.Valid() {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("invalid status value")
		return model.ErrInvalidStatus
	}

	ord, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return fmt.Errorf("failed to update status: %w", err)
	}
	if ord == nil {
		return model.ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update status")
		return fmt.Errorf("failed to update status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("order_code", ord.OrderCode).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// validatePlaceOrderRequest validates the checkout request.
func (s *orderService) validatePlaceOrderRequest(req *model.PlaceOrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if req.UserID == "" {
		return fmt.Errorf("user ID is required")
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyOrder
	}

	for i, line := range req.Items {
		if line.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if line.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// groupByMerchant splits cart lines by merchant code, preserving the order in
// which each code first appears. Lines without a merchant code are fulfilled
// by the platform directly.
func groupByMerchant(lines []model.CartLine) []merchantLines {
	groups := []merchantLines{}
	index := map[string]int{}

	for _, line := range lines {
		code := line.MerchantCode
		if code == "" {
			code = model.MerchantCodeAdmin
		}

		i, ok := index[code]
		if !ok {
			i = len(groups)
			index[code] = i
			groups = append(groups, merchantLines{code: code})
		}

		groups[i].lines = append(groups[i].lines, line)
	}

	return groups
}

// newOrderCode generates a short human-readable order code from a UUID
// fragment.
func newOrderCode() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "PK-" + fragment[:8]
}
