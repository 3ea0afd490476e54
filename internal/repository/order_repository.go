package repository

import (
	"context"
	"fmt"

	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

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

const orderColumns = `id, customer_name, email, phone, address, total_amount,
	amount_due, amount_paid, currency, gateway_order_id, payment_id,
	payment_status, status, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.CustomerName, &o.Email, &o.Phone, &o.Address,
		&o.TotalAmount, &o.AmountDue, &o.AmountPaid, &o.Currency,
		&o.GatewayOrderID, &o.PaymentID, &o.PaymentStatus, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
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
		INSERT INTO orders (id, customer_name, email, phone, address,
			total_amount, amount_due, amount_paid, currency, gateway_order_id,
			payment_id, payment_status, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.CustomerName, order.Email, order.Phone, order.Address,
		order.TotalAmount, order.AmountDue, order.AmountPaid, order.Currency,
		order.GatewayOrderID, order.PaymentID, order.PaymentStatus, order.Status,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("gateway_order_id", order.GatewayOrderID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("gateway_order_id", order.GatewayOrderID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, image, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Name,
			item.Image, item.Quantity, item.Price)
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

// GetAll retrieves all orders with their items, newest first.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	// Attach items in one pass
	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]*model.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	itemsQuery := `
		SELECT id, order_id, product_id, name, image, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	itemRows, err := r.pool.Query(ctx, itemsQuery, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Image, &item.Quantity, &item.Price)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return orders, nil
}

// GetByGatewayOrderID retrieves an order by its gateway-issued order ID.
func (r *orderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, gatewayOrderID), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("gateway_order_id", gatewayOrderID).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("gateway_order_id", gatewayOrderID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, name, image, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Image, &item.Quantity, &item.Price)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &o, nil
}

// MarkPaymentCompleted transitions an order to paid. The update is
// conditional on payment_status still being pending, so racing verification
// calls (or a verify racing the webhook) apply the transition at most once.
func (r *orderRepository) MarkPaymentCompleted(ctx context.Context, gatewayOrderID, paymentID string) (bool, error) {
	query := `
		UPDATE orders
		SET payment_status = 'completed',
			status = 'pending',
			payment_id = $2,
			amount_paid = total_amount,
			amount_due = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE gateway_order_id = $1 AND payment_status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, gatewayOrderID, paymentID)
	if err != nil {
		r.logger.Error().Err(err).Str("gateway_order_id", gatewayOrderID).Msg("failed to mark payment completed")
		return false, fmt.Errorf("failed to mark payment completed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkPaymentFailed transitions an order to failed/canceled, conditional on
// payment_status still being pending.
func (r *orderRepository) MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (bool, error) {
	query := `
		UPDATE orders
		SET payment_status = 'failed',
			status = 'canceled',
			updated_at = CURRENT_TIMESTAMP
		WHERE gateway_order_id = $1 AND payment_status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, gatewayOrderID)
	if err != nil {
		r.logger.Error().Err(err).Str("gateway_order_id", gatewayOrderID).Msg("failed to mark payment failed")
		return false, fmt.Errorf("failed to mark payment failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateStatus sets the fulfillment status unconditionally; no transition
// legality is enforced.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes an order by ID; items go with it via the cascade.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
