package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_GetAll(t *testing.T) {
	orders := []model.Order{
		{
			ID:             uuid.New(),
			CustomerName:   "Asha Rao",
			GatewayOrderID: "order_Nx7f2LqP9a",
			PaymentStatus:  model.PaymentCompleted,
			Status:         model.OrderShipped,
			TotalAmount:    2000,
		},
		{
			ID:             uuid.New(),
			CustomerName:   "Ravi Kumar",
			GatewayOrderID: "order_Mz3e1KpO8b",
			PaymentStatus:  model.PaymentPending,
			Status:         model.OrderCreated,
			TotalAmount:    499.99,
		},
	}

	tests := []struct {
		name           string
		mockReturn     []model.Order
		mockError      error
		expectedStatus int
		expectedLen    int
	}{
		{
			name:           "Success",
			mockReturn:     orders,
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "Empty list",
			mockReturn:     nil,
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := NewOrderHandler(mockService, zerolog.Nop())

			mockService.On("GetAll", mock.Anything).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			w := httptest.NewRecorder()

			h.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp []model.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Len(t, resp, tt.expectedLen)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		requestBody    interface{}
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			pathID:         orderID.String(),
			requestBody:    &model.OrderStatusRequest{Status: model.OrderShipped},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid status",
			pathID:         orderID.String(),
			requestBody:    &model.OrderStatusRequest{Status: "lost-in-transit"},
			mockError:      model.ErrInvalidStatus,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Order not found",
			pathID:         uuid.NewString(),
			requestBody:    &model.OrderStatusRequest{Status: model.OrderDelivered},
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid UUID",
			pathID:         "invalid-uuid",
			requestBody:    &model.OrderStatusRequest{Status: model.OrderShipped},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			pathID:         orderID.String(),
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := NewOrderHandler(mockService, zerolog.Nop())

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("model.OrderStatus")).
					Return(tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/orders/"+tt.pathID, bytes.NewBuffer(body))
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			h.UpdateStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_Delete(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			pathID:         orderID.String(),
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			pathID:         uuid.NewString(),
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid UUID",
			pathID:         "invalid-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := NewOrderHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(tt.mockError)
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			h.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}
