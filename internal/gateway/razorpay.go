package gateway

import (
	"context"
	"fmt"

	"deccan-store/internal/config"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

// razorpayClient implements Client on top of the official Razorpay SDK.
type razorpayClient struct {
	client   *razorpay.Client
	currency string
	logger   zerolog.Logger
}

// NewRazorpayClient creates a gateway client from the configured key pair.
func NewRazorpayClient(cfg config.RazorpayConfig, logger zerolog.Logger) Client {
	return &razorpayClient{
		client:   razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		currency: cfg.Currency,
		logger:   logger.With().Str("component", "razorpay").Logger(),
	}
}

// CreateOrder creates a Razorpay order with immediate payment capture.
// The SDK performs the HTTP call without context support, so ctx is only
// checked before dispatch.
func (c *razorpayClient) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":          amount,
		"currency":        c.currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		c.logger.Error().Err(err).Int64("amount", amount).Msg("gateway order creation failed")
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		c.logger.Error().Interface("body", body).Msg("gateway response missing order id")
		return nil, fmt.Errorf("gateway response missing order id")
	}

	order := &Order{
		ID:         id,
		Amount:     asInt64(body["amount"]),
		AmountDue:  asInt64(body["amount_due"]),
		AmountPaid: asInt64(body["amount_paid"]),
		Currency:   c.currency,
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		order.Currency = cur
	}

	c.logger.Info().
		Str("gateway_order_id", order.ID).
		Int64("amount", order.Amount).
		Msg("gateway order created")

	return order, nil
}

// asInt64 converts the SDK's decoded JSON numbers to int64.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
