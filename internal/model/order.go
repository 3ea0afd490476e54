package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the outcome of the payment verification step.
type PaymentStatus string

// OrderStatus is the fulfillment stage of an order, managed independently
// of payment status.
type OrderStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"

	OrderCreated   OrderStatus = "created"
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
)

// ValidOrderStatus reports whether s is a known fulfillment status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderCreated, OrderPending, OrderShipped, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

// Order represents one checkout attempt and its fulfillment lifecycle.
// GatewayOrderID is the Razorpay-issued order id and is the join key
// between this record and the gateway's; it is unique.
type Order struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	CustomerName   string        `json:"customerName" db:"customer_name"`
	Email          string        `json:"email" db:"email"`
	Phone          string        `json:"phone" db:"phone"`
	Address        string        `json:"address" db:"address"`
	Items          []OrderItem   `json:"items"`
	TotalAmount    float64       `json:"totalAmount" db:"total_amount"`
	AmountDue      float64       `json:"amountDue" db:"amount_due"`
	AmountPaid     float64       `json:"amountPaid" db:"amount_paid"`
	Currency       string        `json:"currency" db:"currency"`
	GatewayOrderID string        `json:"orderId" db:"gateway_order_id"`
	PaymentID      string        `json:"paymentId,omitempty" db:"payment_id"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" db:"payment_status"`
	Status         OrderStatus   `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item snapshot copied at order time, so later product
// edits do not alter historical orders.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Image     string    `json:"image" db:"image"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
}

// CheckoutRequest represents the request payload for POST /api/payment.
type CheckoutRequest struct {
	Name       string         `json:"name" validate:"required"`
	Email      string         `json:"email" validate:"required,email"`
	Phone      string         `json:"phone" validate:"required"`
	TotalPrice float64        `json:"totalPrice" validate:"required,gt=0"`
	Items      []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Address    string         `json:"address" validate:"required"`
}

// CheckoutItem is a single cart line submitted at checkout.
type CheckoutItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CheckoutResponse is returned to the client so it can open the payment flow.
// The local order id is deliberately not included.
type CheckoutResponse struct {
	Status          string `json:"status"`
	RazorpayOrderID string `json:"razorpayOrderId"`
}

// VerifyRequest represents the request payload for POST /api/verify.
type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// VerifyResponse is the client-facing payment verification result.
type VerifyResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	OrderDetails *Order `json:"orderDetails,omitempty"`
}

// OrderStatusRequest represents an admin fulfillment status update.
type OrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}
