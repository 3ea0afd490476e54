package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"deccan-store/internal/config"
	"deccan-store/internal/gateway"
	"deccan-store/internal/model"
	"deccan-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	repo    repository.OrderRepository
	gateway gateway.Client
	secret  string
	logger  zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.OrderRepository,
	gw gateway.Client,
	cfg config.RazorpayConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		repo:    repo,
		gateway: gw,
		secret:  cfg.KeySecret,
		logger:  logger.With().Str("service", "order").Logger(),
	}
}

// Checkout creates exactly one gateway order and one local order per call.
// There is no idempotency key: a duplicated client request produces
// duplicate gateway and local orders. A gateway order is not rolled back if
// the local write fails afterwards.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	// Gateway expects the smallest currency unit (paise for INR)
	amount := int64(math.Round(req.TotalPrice * 100))

	notes := map[string]string{}
	if itemsJSON, err := json.Marshal(req.Items); err == nil {
		notes["items"] = string(itemsJSON)
	}

	receipt := fmt.Sprintf("receipt#%d", rand.IntN(1_000_000))

	gwOrder, err := s.gateway.CreateOrder(ctx, amount, receipt, notes)
	if err != nil {
		s.logger.Error().Err(err).Float64("total_price", req.TotalPrice).Msg("gateway order creation failed")
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	now := time.Now()
	order := &model.Order{
		ID:             uuid.New(),
		CustomerName:   req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		TotalAmount:    float64(gwOrder.Amount) / 100,
		AmountDue:      float64(gwOrder.AmountDue) / 100,
		AmountPaid:     float64(gwOrder.AmountPaid) / 100,
		Currency:       gwOrder.Currency,
		GatewayOrderID: gwOrder.ID,
		PaymentStatus:  model.PaymentPending,
		Status:         model.OrderCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.repo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("gateway_order_id", gwOrder.ID).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.repo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to persist order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("gateway_order_id", gwOrder.ID).
		Int64("amount", gwOrder.Amount).
		Msg("checkout order created")

	return &model.CheckoutResponse{
		Status:          "success",
		RazorpayOrderID: gwOrder.ID,
	}, nil
}

// VerifyPayment recomputes the HMAC over "<orderId>|<paymentId>" and
// compares it against the client-supplied signature. A match completes the
// payment; a mismatch fails it. Either way the matching order transitions
// at most once.
func (s *orderService) VerifyPayment(ctx context.Context, req *model.VerifyRequest) (*model.Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	if !gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.secret) {
		// Signature details are never echoed back to the client
		s.logger.Warn().
			Str("gateway_order_id", req.RazorpayOrderID).
			Msg("payment signature mismatch")

		failed, err := s.repo.MarkPaymentFailed(ctx, req.RazorpayOrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to record payment failure: %w", err)
		}
		if !failed {
			return nil, model.ErrOrderNotFound
		}
		return nil, model.ErrPaymentFailed
	}

	completed, err := s.repo.MarkPaymentCompleted(ctx, req.RazorpayOrderID, req.RazorpayPaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment completion: %w", err)
	}
	if !completed {
		// Unknown gateway order id, or the order already left the pending
		// state. The verification is not retried.
		return nil, model.ErrOrderNotFound
	}

	order, err := s.repo.GetByGatewayOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("gateway_order_id", req.RazorpayOrderID).
		Str("payment_id", req.RazorpayPaymentID).
		Msg("payment verified")

	return order, nil
}

// HandleGatewayEvent applies a gateway-pushed payment event. Unknown event
// types are ignored so new gateway events cannot break the endpoint.
func (s *orderService) HandleGatewayEvent(ctx context.Context, event, gatewayOrderID, paymentID string) error {
	switch event {
	case "payment.captured":
		completed, err := s.repo.MarkPaymentCompleted(ctx, gatewayOrderID, paymentID)
		if err != nil {
			return fmt.Errorf("failed to apply captured event: %w", err)
		}
		if !completed {
			return model.ErrOrderNotFound
		}
		s.logger.Info().
			Str("gateway_order_id", gatewayOrderID).
			Msg("payment captured via webhook")

	case "payment.failed":
		failed, err := s.repo.MarkPaymentFailed(ctx, gatewayOrderID)
		if err != nil {
			return fmt.Errorf("failed to apply failed event: %w", err)
		}
		if !failed {
			return model.ErrOrderNotFound
		}
		s.logger.Info().
			Str("gateway_order_id", gatewayOrderID).
			Msg("payment failed via webhook")

	default:
		s.logger.Debug().Str("event", event).Msg("ignoring gateway event")
	}

	return nil
}

// GetAll retrieves all orders with items, newest first. No server-side
// pagination or filtering; the admin console filters client-side.
func (s *orderService) GetAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status. The transition is not checked
// for legality: any state may move to any other.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if !model.ValidOrderStatus(status) {
		return model.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !updated {
		return model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// Delete removes an order immediately; there is no soft delete.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")

	return nil
}
