package router

import (
	"net/http"

	"deccan-store/internal/handler"
	"deccan-store/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	paymentHandler *handler.PaymentHandler,
	orderHandler *handler.OrderHandler,
	cartHandler *handler.CartHandler,
	uploadHandler *handler.UploadHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog
	mux.HandleFunc("GET /api/categories", categoryHandler.GetAll)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.GetByID)
	mux.HandleFunc("POST /api/categories", categoryHandler.Create)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.Delete)

	mux.HandleFunc("GET /api/products", productHandler.GetAll)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("POST /api/products", productHandler.Create)
	mux.HandleFunc("PUT /api/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.Delete)
	mux.HandleFunc("POST /api/products/{id}/reviews", productHandler.AddReview)

	// Checkout and payment
	mux.HandleFunc("POST /api/payment", paymentHandler.Checkout)
	mux.HandleFunc("POST /api/verify", paymentHandler.Verify)
	mux.HandleFunc("POST /api/payment/webhook", paymentHandler.Webhook)

	// Order administration
	mux.HandleFunc("GET /api/orders", orderHandler.GetAll)
	mux.HandleFunc("PUT /api/orders/{id}", orderHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/orders/{id}", orderHandler.Delete)

	// Cart and wishlist
	mux.HandleFunc("GET /api/cart/{userId}", cartHandler.GetCart)
	mux.HandleFunc("PUT /api/cart/{userId}", cartHandler.ReplaceCart)
	mux.HandleFunc("DELETE /api/cart/{userId}/{productId}", cartHandler.RemoveCartItem)
	mux.HandleFunc("GET /api/wishlist/{userId}", cartHandler.GetWishlist)
	mux.HandleFunc("POST /api/wishlist/{userId}", cartHandler.AddWishlistItem)
	mux.HandleFunc("DELETE /api/wishlist/{userId}/{productId}", cartHandler.RemoveWishlistItem)

	// Uploads
	mux.HandleFunc("POST /api/uploads", uploadHandler.Upload)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
