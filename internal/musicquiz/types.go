package musicquiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup that matched no quiz.
var ErrNotFound = errors.New("music quiz not found")

// Category buckets the free-form song quizzes.
type Category string

const (
	CategoryNurseryRhyme  Category = "NURSERY_RHYME"
	CategoryAnimationOST  Category = "ANIMATION_OST"
	CategoryDisney        Category = "DISNEY"
	CategoryKidsPop       Category = "KIDS_POP"
	CategoryEducation     Category = "EDUCATION"
	CategoryCharacterSong Category = "CHARACTER_SONG"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryNurseryRhyme, CategoryAnimationOST, CategoryDisney,
		CategoryKidsPop, CategoryEducation, CategoryCharacterSong:
		return true
	}
	return false
}

// Quiz is a song-guessing round answered with free text instead of thumbnail
// choices. Deletion is hard; there is no soft-delete marker.
type Quiz struct {
	ID        uuid.UUID `json:"id"`
	MusicURL  string    `json:"musicUrl"`
	Answer    string    `json:"answer"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GameView is the client-facing shape of a quiz: everything but the answer.
type GameView struct {
	ID       uuid.UUID `json:"id"`
	MusicURL string    `json:"musicUrl"`
	ImageURL *string   `json:"imageUrl,omitempty"`
	Title    string    `json:"title"`
	Category Category  `json:"category"`
}

// ForGame strips the answer for client delivery.
func (q Quiz) ForGame() GameView {
	return GameView{
		ID:       q.ID,
		MusicURL: q.MusicURL,
		ImageURL: q.ImageURL,
		Title:    q.Title,
		Category: q.Category,
	}
}

// CreateRequest is the admin payload for a new quiz.
type CreateRequest struct {
	MusicURL string   `json:"musicUrl"`
	Answer   string   `json:"answer"`
	ImageURL *string  `json:"imageUrl"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
}

// UpdateRequest carries partial updates; nil fields are left unchanged.
type UpdateRequest struct {
	MusicURL *string   `json:"musicUrl"`
	Answer   *string   `json:"answer"`
	ImageURL *string   `json:"imageUrl"`
	Title    *string   `json:"title"`
	Category *Category `json:"category"`
}

// Page is one slice of the full quiz listing.
type Page struct {
	Items      []Quiz `json:"items"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalCount int64  `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
}

// AnswerResult reports a free-text answer check. The correct answer is always
// disclosed.
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Message       string `json:"message"`
}
