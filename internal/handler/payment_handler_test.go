package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deccan-store/internal/config"
	"deccan-store/internal/gateway"
	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockOrderService) VerifyPayment(ctx context.Context, req *model.VerifyRequest) (*model.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) HandleGatewayEvent(ctx context.Context, event, gatewayOrderID, paymentID string) error {
	args := m.Called(ctx, event, gatewayOrderID, paymentID)
	return args.Error(0)
}

func (m *MockOrderService) GetAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testWebhookSecret = "whsec_test"

func newTestPaymentHandler(service *MockOrderService) *PaymentHandler {
	cfg := config.RazorpayConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     "test_key_secret",
		WebhookSecret: testWebhookSecret,
		Currency:      "INR",
	}
	return NewPaymentHandler(service, cfg, zerolog.Nop())
}

func TestPaymentHandler_Checkout(t *testing.T) {
	checkoutReq := &model.CheckoutRequest{
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Phone:      "+919876543210",
		TotalPrice: 2000,
		Address:    "12 MG Road, Bengaluru",
		Items: []model.CheckoutItem{
			{ProductID: uuid.NewString(), Name: "Kanchipuram Silk Saree", Quantity: 2, Price: 1000},
		},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *model.CheckoutResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			requestBody:    checkoutReq,
			mockReturn:     &model.CheckoutResponse{Status: "success", RazorpayOrderID: "order_Nx7f2LqP9a"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Validation error",
			requestBody:    &model.CheckoutRequest{},
			mockError:      model.NewDomainError(model.ErrCodeValidation, "name is required"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Gateway failure",
			requestBody:    checkoutReq,
			mockError:      errors.New("gateway unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := newTestPaymentHandler(mockService)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("Checkout", mock.Anything, mock.AnythingOfType("*model.CheckoutRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/payment", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			h.Checkout(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.mockReturn != nil {
				var resp model.CheckoutResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "success", resp.Status)
				assert.Equal(t, tt.mockReturn.RazorpayOrderID, resp.RazorpayOrderID)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestPaymentHandler_Verify_Success(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	order := &model.Order{
		ID:             uuid.New(),
		GatewayOrderID: "order_Nx7f2LqP9a",
		PaymentID:      "pay_Nx7g3MrQ0b",
		PaymentStatus:  model.PaymentCompleted,
		Status:         model.OrderPending,
	}

	mockService.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*model.VerifyRequest")).
		Return(order, nil)

	body, _ := json.Marshal(model.VerifyRequest{
		RazorpayOrderID:   "order_Nx7f2LqP9a",
		RazorpayPaymentID: "pay_Nx7g3MrQ0b",
		RazorpaySignature: "abc123",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.OrderDetails)
	assert.Equal(t, model.PaymentCompleted, resp.OrderDetails.PaymentStatus)
	assert.Equal(t, model.OrderPending, resp.OrderDetails.Status)

	mockService.AssertExpectations(t)
}

func TestPaymentHandler_Verify_SignatureMismatch(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	mockService.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*model.VerifyRequest")).
		Return(nil, model.ErrPaymentFailed)

	body, _ := json.Marshal(model.VerifyRequest{
		RazorpayOrderID:   "order_Nx7f2LqP9a",
		RazorpayPaymentID: "pay_Nx7g3MrQ0b",
		RazorpaySignature: "tampered",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failure", resp.Status)
	assert.Nil(t, resp.OrderDetails)
}

func TestPaymentHandler_Verify_OrderNotFound(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	mockService.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*model.VerifyRequest")).
		Return(nil, model.ErrOrderNotFound)

	body, _ := json.Marshal(model.VerifyRequest{
		RazorpayOrderID:   "order_unknown",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "abc123",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func webhookBody(t *testing.T, event, orderID, paymentID string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"event": event,
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       paymentID,
					"order_id": orderID,
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

func TestPaymentHandler_Webhook_PaymentCaptured(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	body := webhookBody(t, "payment.captured", "order_wh1", "pay_wh1")

	mockService.On("HandleGatewayEvent", mock.Anything, "payment.captured", "order_wh1", "pay_wh1").
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Razorpay-Signature", gateway.WebhookSignature(body, testWebhookSecret))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_Webhook_InvalidSignature(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	body := webhookBody(t, "payment.captured", "order_wh1", "pay_wh1")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Razorpay-Signature", "forged")
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "HandleGatewayEvent")
}

func TestPaymentHandler_Webhook_MissingSignature(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	body := webhookBody(t, "payment.captured", "order_wh1", "pay_wh1")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "HandleGatewayEvent")
}

func TestPaymentHandler_Webhook_SecretNotConfigured(t *testing.T) {
	mockService := new(MockOrderService)
	h := NewPaymentHandler(mockService, config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "s"}, zerolog.Nop())

	body := webhookBody(t, "payment.captured", "order_wh1", "pay_wh1")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Razorpay-Signature", gateway.WebhookSignature(body, testWebhookSecret))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	mockService.AssertNotCalled(t, "HandleGatewayEvent")
}

func TestPaymentHandler_Webhook_UnknownOrder(t *testing.T) {
	mockService := new(MockOrderService)
	h := newTestPaymentHandler(mockService)

	body := webhookBody(t, "payment.failed", "order_unknown", "pay_wh2")

	mockService.On("HandleGatewayEvent", mock.Anything, "payment.failed", "order_unknown", "pay_wh2").
		Return(model.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Razorpay-Signature", gateway.WebhookSignature(body, testWebhookSecret))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}
