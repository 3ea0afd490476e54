package handler

import (
	"encoding/json"
	"net/http"

	"deccan-store/internal/model"
	"deccan-store/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart and wishlist HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// GetCart handles GET /api/cart/{userId} requests.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// ReplaceCart handles PUT /api/cart/{userId} requests, replacing the cart
// contents wholesale.
func (h *CartHandler) ReplaceCart(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	var req model.CartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.ReplaceCart(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveCartItem handles DELETE /api/cart/{userId}/{productId} requests.
func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	if err := h.service.RemoveCartItem(r.Context(), userID, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// GetWishlist handles GET /api/wishlist/{userId} requests.
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	wishlist, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// AddWishlistItem handles POST /api/wishlist/{userId} requests. Adding a
// product already on the wishlist is a no-op.
func (h *CartHandler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	var req model.WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	wishlist, err := h.service.AddWishlistItem(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// RemoveWishlistItem handles DELETE /api/wishlist/{userId}/{productId} requests.
func (h *CartHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", h.logger)
		return
	}

	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	if err := h.service.RemoveWishlistItem(r.Context(), userID, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from wishlist"})
}
