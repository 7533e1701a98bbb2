package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup that matched no live category.
var ErrNotFound = errors.New("category not found")

// Category groups quiz items for browsing. Soft-deleted rows keep their
// DeletedAt timestamp and stop appearing in any listing.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	Visible      bool       `json:"visible"`
	DisplayOrder int        `json:"displayOrder"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateRequest is the admin payload for a new category.
type CreateRequest struct {
	Name         string `json:"name"`
	Visible      bool   `json:"visible"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateRequest carries partial updates; nil fields are left unchanged.
type UpdateRequest struct {
	Name         *string `json:"name"`
	ImageURL     *string `json:"imageUrl"`
	Visible      *bool   `json:"visible"`
	DisplayOrder *int    `json:"displayOrder"`
}
