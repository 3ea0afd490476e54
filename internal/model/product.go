package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalogue.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Images      []string  `json:"image" db:"images"`
	CategoryID  uuid.UUID `json:"category" db:"category_id"`
	Subcategory string    `json:"subcategory" db:"subcategory"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Discount    float64   `json:"discount" db:"discount"`
	Features    []string  `json:"features" db:"features"`
	Rating      float64   `json:"rating" db:"rating"`
	NumReviews  int       `json:"numReviews" db:"num_reviews"`
	Reviews     []Review  `json:"reviews"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Review represents a single customer review of a product.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"-" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	UserID    string    `json:"user" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest represents the request payload for creating a product.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Images      []string `json:"image" validate:"required,min=1"`
	CategoryID  string   `json:"category" validate:"required,uuid4"`
	Subcategory string   `json:"subcategory" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Discount    float64  `json:"discount" validate:"gte=0"`
	Features    []string `json:"features"`
}

// ProductUpdateRequest represents a partial product update. Nil fields are
// left unchanged.
type ProductUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Images      []string `json:"image,omitempty"`
	CategoryID  *string  `json:"category,omitempty" validate:"omitempty,uuid4"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Features    []string `json:"features,omitempty"`
}

// ReviewRequest represents the request payload for adding a product review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
	Name    string `json:"name" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	CategoryID  *uuid.UUID
	Subcategory string
	Search      string
	SortBy      string // name, price or rating
	SortDesc    bool
}
