package gateway

import "context"

// Order is a payment-provider-side order created before payment. Amounts are
// in the smallest currency unit (paise for INR).
type Order struct {
	ID         string
	Amount     int64
	AmountDue  int64
	AmountPaid int64
	Currency   string
}

// Client defines the outbound payment gateway operations used by the
// checkout flow.
type Client interface {
	// CreateOrder creates a gateway order for the given amount (smallest
	// currency unit) and returns the gateway's view of it.
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*Order, error)
}
