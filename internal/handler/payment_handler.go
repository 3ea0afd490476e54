package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"deccan-store/internal/config"
	"deccan-store/internal/gateway"
	"deccan-store/internal/model"
	"deccan-store/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles checkout, payment verification and gateway webhooks.
type PaymentHandler struct {
	service service.OrderService
	cfg     config.RazorpayConfig
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.OrderService, cfg config.RazorpayConfig, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		cfg:     cfg,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Checkout handles POST /api/payment requests. It creates a gateway order
// for the cart total and returns the gateway order id the client needs to
// open the payment widget.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.logger.Info().Str("razorpay_order_id", resp.RazorpayOrderID).Msg("checkout order created")
	writeJSON(w, http.StatusOK, resp)
}

// Verify handles POST /api/verify requests with the payment result the
// gateway handed to the client. A signature mismatch marks the order failed
// and is reported as a failure, not an error.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.VerifyPayment(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrPaymentFailed) {
			h.logger.Warn().Str("razorpay_order_id", req.RazorpayOrderID).Msg("payment signature mismatch")
			writeJSON(w, http.StatusBadRequest, model.VerifyResponse{
				Status:  "failure",
				Message: "Payment verification failed",
			})
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Str("razorpay_order_id", req.RazorpayOrderID).
		Str("payment_id", req.RazorpayPaymentID).
		Msg("payment verified")
	writeJSON(w, http.StatusOK, model.VerifyResponse{
		Status:       "success",
		Message:      "Payment verified successfully",
		OrderDetails: order,
	})
}

// webhookEvent is the subset of the gateway webhook payload we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook handles POST /api/payment/webhook requests pushed by the gateway.
// The signature covers the raw body, so it must be checked before any
// decoding. Webhooks are not API-key authenticated; the signature is the
// authentication.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.cfg.WebhookSecret == "" {
		writeError(w, http.StatusServiceUnavailable, "webhook secret not configured", h.logger)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", h.logger)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !gateway.VerifyWebhookSignature(body, signature, h.cfg.WebhookSecret) {
		h.logger.Warn().Msg("webhook signature mismatch")
		writeError(w, http.StatusUnauthorized, "invalid webhook signature", h.logger)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid webhook payload", h.logger)
		return
	}

	entity := event.Payload.Payment.Entity
	if err := h.service.HandleGatewayEvent(r.Context(), event.Event, entity.OrderID, entity.ID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Str("event", event.Event).
		Str("razorpay_order_id", entity.OrderID).
		Msg("webhook processed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
