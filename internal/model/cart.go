package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a user's cart.
type CartItem struct {
	UserID    string    `json:"-" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// Cart is the full cart for one user.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// CartRequest replaces a user's cart contents.
type CartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}

// CartItemRequest is a single cart line in a cart update.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// WishlistItem is one product in a user's wishlist.
type WishlistItem struct {
	UserID    string    `json:"-" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// Wishlist is the full wishlist for one user.
type Wishlist struct {
	UserID string         `json:"userId"`
	Items  []WishlistItem `json:"items"`
}

// WishlistRequest adds a product to a wishlist.
type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
}
