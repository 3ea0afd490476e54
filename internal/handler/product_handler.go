package handler

import (
	"encoding/json"
	"net/http"

	"deccan-store/internal/model"
	"deccan-store/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with optional category,
// subcategory, search and sort query parameters.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		Subcategory: r.URL.Query().Get("subcategory"),
		Search:      r.URL.Query().Get("search"),
		SortBy:      r.URL.Query().Get("sort"),
		SortDesc:    r.URL.Query().Get("order") == "desc",
	}

	if category := r.URL.Query().Get("category"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category ID", h.logger)
			return
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		// The original storefront treats a missing category on create as a
		// bad request rather than a 404
		if err == model.ErrCategoryNotFound {
			writeError(w, http.StatusBadRequest, "Category not found", h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var req model.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// AddReview handles POST /api/products/{id}/reviews requests.
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.AddReview(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
