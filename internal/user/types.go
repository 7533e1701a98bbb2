package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup that matched no user.
var ErrNotFound = errors.New("user not found")

// AppUser is a device-registered client of the quiz service, authenticated by
// its API key.
type AppUser struct {
	ID                 uuid.UUID   `json:"id"`
	APIKey             string      `json:"-"`
	Nickname           *string     `json:"nickname,omitempty"`
	DeviceID           *string     `json:"deviceId,omitempty"`
	Platform           *string     `json:"platform,omitempty"`
	AllowedCategoryIDs []uuid.UUID `json:"allowedCategoryIds"`
	Active             bool        `json:"active"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// RegisterRequest creates (or re-fetches) a device-bound user.
type RegisterRequest struct {
	Nickname *string `json:"nickname"`
	DeviceID *string `json:"deviceId"`
	Platform *string `json:"platform"`
}

// RegisterResponse is the only place the API key leaves the server.
type RegisterResponse struct {
	UserID   uuid.UUID `json:"userId"`
	APIKey   string    `json:"apiKey"`
	Nickname *string   `json:"nickname,omitempty"`
}
