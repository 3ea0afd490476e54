package repository

import (
	"context"

	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAll retrieves all categories ordered by name.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by its ID. Returns nil when the
	// category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetByName retrieves a single category by its unique name. Returns nil
	// when the category does not exist.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// Update updates an existing category. Returns false when no row matched.
	Update(ctx context.Context, category *model.Category) (bool, error)

	// Delete removes a category by ID. Returns false when no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products matching the filter.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product with its reviews. Returns nil when
	// the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the full product record. Returns false when no row
	// matched.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product by ID. Returns false when no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AddReview inserts a review and recomputes the product's aggregate
	// rating and review count in the same transaction. Returns false when
	// the product does not exist.
	AddReview(ctx context.Context, review *model.Review) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetAll retrieves all orders with their items, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetByGatewayOrderID retrieves an order by its gateway-issued order ID
	// along with its items. Returns nil when the order does not exist.
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)

	// MarkPaymentCompleted transitions payment_status to completed, status
	// to pending and records the payment ID, but only while payment_status
	// is still pending. Returns false when no row transitioned.
	MarkPaymentCompleted(ctx context.Context, gatewayOrderID, paymentID string) (bool, error)

	// MarkPaymentFailed transitions payment_status to failed and status to
	// canceled, but only while payment_status is still pending. Returns
	// false when no row transitioned.
	MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (bool, error)

	// UpdateStatus sets the fulfillment status unconditionally. Returns
	// false when no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)

	// Delete removes an order and its items. Returns false when no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CartRepository defines the interface for cart and wishlist data access.
type CartRepository interface {
	// GetCart retrieves all cart items for a user.
	GetCart(ctx context.Context, userID string) ([]model.CartItem, error)

	// ReplaceCart replaces the user's cart contents atomically.
	ReplaceCart(ctx context.Context, userID string, items []model.CartItem) error

	// RemoveCartItem removes one product from the user's cart. Returns false
	// when no row matched.
	RemoveCartItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error)

	// GetWishlist retrieves all wishlist items for a user.
	GetWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error)

	// AddWishlistItem adds one product to the user's wishlist; adding an
	// already-present product is a no-op.
	AddWishlistItem(ctx context.Context, item *model.WishlistItem) error

	// RemoveWishlistItem removes one product from the user's wishlist.
	// Returns false when no row matched.
	RemoveWishlistItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error)
}
