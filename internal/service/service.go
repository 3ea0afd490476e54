package service

import (
	"context"

	"deccan-store/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate checks request DTOs against their struct tags before any
// business logic runs.
var validate = validator.New()

// CategoryService defines operations for category management.
type CategoryService interface {
	// GetAll retrieves all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Create creates a new category; a duplicate name is rejected.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves products matching the filter.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID with its reviews.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create creates a new product; the referenced category must exist.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update applies a partial update to an existing product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductUpdateRequest) (*model.Product, error)

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddReview adds a review and returns the product with its recomputed
	// aggregate rating.
	AddReview(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.Product, error)
}

// OrderService defines the checkout, payment verification and order
// administration operations.
type OrderService interface {
	// Checkout creates a gateway order for the cart total and persists a
	// local order mirroring it.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// VerifyPayment checks a client-reported payment result against the
	// gateway secret and transitions the order accordingly. On success the
	// full updated order is returned.
	VerifyPayment(ctx context.Context, req *model.VerifyRequest) (*model.Order, error)

	// HandleGatewayEvent applies a gateway-pushed payment event
	// (payment.captured / payment.failed) to the matching order. The
	// webhook signature must already be verified by the caller.
	HandleGatewayEvent(ctx context.Context, event, gatewayOrderID, paymentID string) error

	// GetAll retrieves all orders with items, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus sets an order's fulfillment status, independent of its
	// payment status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// Delete removes an order by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService defines cart and wishlist operations.
type CartService interface {
	// GetCart retrieves a user's cart.
	GetCart(ctx context.Context, userID string) (*model.Cart, error)

	// ReplaceCart replaces a user's cart contents.
	ReplaceCart(ctx context.Context, userID string, req *model.CartRequest) (*model.Cart, error)

	// RemoveCartItem removes one product from a user's cart.
	RemoveCartItem(ctx context.Context, userID string, productID uuid.UUID) error

	// GetWishlist retrieves a user's wishlist.
	GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error)

	// AddWishlistItem adds a product to a user's wishlist.
	AddWishlistItem(ctx context.Context, userID string, req *model.WishlistRequest) (*model.Wishlist, error)

	// RemoveWishlistItem removes one product from a user's wishlist.
	RemoveWishlistItem(ctx context.Context, userID string, productID uuid.UUID) error
}
