package model

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a top-level catalogue grouping.
type Category struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Subcategories []string  `json:"subcategories" db:"subcategories"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryRequest represents the request payload for creating or updating a category.
type CategoryRequest struct {
	Name          string   `json:"name" validate:"required"`
	Subcategories []string `json:"subcategories"`
}
