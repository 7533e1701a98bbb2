package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup that matched no live item.
var ErrNotFound = errors.New("item not found")

// Question is one spoken prompt attached to an item.
type Question struct {
	Question      string `json:"question"`
	QuestionVoice string `json:"questionVoice"`
}

// Item is a quiz subject: an image, a spoken name, and its question prompts.
// Names are unique among live items; deletion is soft.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	CategoryID uuid.UUID  `json:"categoryId"`
	ImageURL   string     `json:"imageUrl"`
	Name       string     `json:"name"`
	NameVoice  string     `json:"nameVoice"`
	Questions  []Question `json:"questions"`
	DeletedAt  *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreatePayload describes one item to create.
type CreatePayload struct {
	ImageURL  string     `json:"imageUrl"`
	Name      string     `json:"name"`
	NameVoice string     `json:"nameVoice"`
	Questions []Question `json:"questions"`
}

// CreateRequest creates a single item under a category.
type CreateRequest struct {
	CategoryID uuid.UUID `json:"categoryId"`
	CreatePayload
}

// BulkCreateRequest creates many items under one category.
type BulkCreateRequest struct {
	Items []CreatePayload `json:"items"`
}

// BulkCreateByNameRequest creates many items under a category resolved (or
// created) by name.
type BulkCreateByNameRequest struct {
	CategoryName     string          `json:"categoryName"`
	CategoryImageURL *string         `json:"categoryImageUrl"`
	Items            []CreatePayload `json:"items"`
}

// BulkCreateResponse reports the resolved category alongside the new items.
type BulkCreateResponse struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CreatedCount int       `json:"createdCount"`
	Items        []Item    `json:"items"`
}

// UpdateRequest carries partial updates; nil fields are left unchanged.
type UpdateRequest struct {
	CategoryID *uuid.UUID  `json:"categoryId"`
	ImageURL   *string     `json:"imageUrl"`
	Name       *string     `json:"name"`
	NameVoice  *string     `json:"nameVoice"`
	Questions  *[]Question `json:"questions"`
}
