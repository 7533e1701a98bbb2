package track

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status marks whether a track is eligible for quiz sampling.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

const thumbnailURLTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

// ThumbnailURLOf derives the default thumbnail for a YouTube video id.
func ThumbnailURLOf(videoID string) string {
	return fmt.Sprintf(thumbnailURLTemplate, videoID)
}

// Track is a playable media item eligible for quiz questions when ACTIVE.
type Track struct {
	ID           uuid.UUID `json:"id"`
	VideoID      string    `json:"videoId"`
	StartSeconds int       `json:"startSeconds"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Status       Status    `json:"status"`
	Title        string    `json:"title"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Difficulty   *string   `json:"difficulty,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SampleFilter restricts random sampling over the ACTIVE track pool.
// Category and Difficulty are exact matches when non-empty.
type SampleFilter struct {
	Category   string
	Difficulty string
	ExcludeIDs []uuid.UUID
}

// CreateRequest is the admin payload for registering a track.
type CreateRequest struct {
	VideoID      string  `json:"videoId"`
	StartSeconds int     `json:"startSeconds"`
	Title        string  `json:"title"`
	ImageURL     *string `json:"imageUrl"`
	Category     *string `json:"category"`
	Difficulty   *string `json:"difficulty"`
}

// UpdateRequest carries partial track updates; nil fields are left unchanged.
type UpdateRequest struct {
	VideoID      *string `json:"videoId"`
	StartSeconds *int    `json:"startSeconds"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Status       *Status `json:"status"`
	Title        *string `json:"title"`
	ImageURL     *string `json:"imageUrl"`
	Category     *string `json:"category"`
	Difficulty   *string `json:"difficulty"`
}
