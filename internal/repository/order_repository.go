package repository

import (
	"context"
	"fmt"

	"plantkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `
	id, order_code, parent_order_id, merchant_code, user_id,
	COALESCE(total_amount, 0), COALESCE(subtotal, 0), status,
	cart_items, delivery_address, quotation_code, created_at, updated_at
`

const itemColumns = `
	id, order_id, product_id, name, image_url, quantity,
	unit_price, price, COALESCE(subtotal, 0), variety, pot_size, grafted
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_code, parent_order_id, merchant_code, user_id,
			total_amount, subtotal, status, cart_items, delivery_address,
			quotation_code, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderCode, order.ParentOrderID, order.MerchantCode, order.UserID,
		order.TotalAmount, order.Subtotal, order.Status, order.CartItems, order.DeliveryAddress,
		order.QuotationCode, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("order_code", order.OrderCode).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_code", order.OrderCode).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (
			id, order_id, product_id, name, image_url, quantity,
			unit_price, price, subtotal, variety, pot_size, grafted
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID, item.OrderID, item.ProductID, item.Name, item.ImageURL, item.Quantity,
			item.UnitPrice, item.Price, item.Subtotal, item.Variety, item.PotSize, item.Grafted,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves a single order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := r.scanOrderRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// GetChildren retrieves the child orders belonging to a parent, oldest first
// so merchant groups keep their original split order.
func (r *orderRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE parent_order_id = $1 ORDER BY created_at, order_code`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		r.logger.Error().Err(err).Str("parent_order_id", parentID.String()).Msg("failed to query child orders")
		return nil, fmt.Errorf("failed to query child orders: %w", err)
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// GetItems retrieves the normalized line items of an order.
func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.ImageURL, &item.Quantity,
			&item.UnitPrice, &item.Price, &item.Subtotal, &item.Variety, &item.PotSize, &item.Grafted,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// GetParentsByUser retrieves a user's parent orders, newest first.
func (r *orderRepository) GetParentsByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND parent_order_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query orders by user")
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// UpdateStatus writes a new status to a single order.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		r.logger.Error().Err(err).
			Str("order_id", orderID.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// UpdateItemSubtotal writes a recomputed subtotal to a single line item.
func (r *orderRepository) UpdateItemSubtotal(ctx context.Context, itemID uuid.UUID, subtotal float64) error {
	query := `UPDATE order_items SET subtotal = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, itemID, subtotal)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update item subtotal")
		return fmt.Errorf("failed to update item subtotal: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order item %s not found", itemID)
	}

	return nil
}

// UpdateOrderSubtotal writes a recomputed subtotal to an order. Both amount
// columns carry the same value, so both are set here.
func (r *orderRepository) UpdateOrderSubtotal(ctx context.Context, orderID uuid.UUID, subtotal float64) error {
	query := `UPDATE orders SET subtotal = $2, total_amount = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, orderID, subtotal)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to update order subtotal")
		return fmt.Errorf("failed to update order subtotal: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}

	return nil
}

// scanOrderRow scans a single order row.
func (r *orderRepository) scanOrderRow(row pgx.Row) (*model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID, &order.OrderCode, &order.ParentOrderID, &order.MerchantCode, &order.UserID,
		&order.TotalAmount, &order.Subtotal, &order.Status,
		&order.CartItems, &order.DeliveryAddress, &order.QuotationCode,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// collectOrders drains rows into a slice of orders.
func (r *orderRepository) collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID, &order.OrderCode, &order.ParentOrderID, &order.MerchantCode, &order.UserID,
			&order.TotalAmount, &order.Subtotal, &order.Status,
			&order.CartItems, &order.DeliveryAddress, &order.QuotationCode,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
