package track

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateVideo reports a create/update colliding with a registered video.
	ErrDuplicateVideo = errors.New("video already registered")
	// ErrNotFound reports a lookup that matched no track.
	ErrNotFound = errors.New("track not found")
)

// Store defines the persistence operations the service needs. The same
// repository also serves the game package's sampler capability.
type Store interface {
	Create(ctx context.Context, t *Track) error
	GetByID(ctx context.Context, id uuid.UUID) (Track, error)
	ExistsByVideoID(ctx context.Context, videoID string) (bool, error)
	List(ctx context.Context, status *Status, category string) ([]Track, error)
	Update(ctx context.Context, t *Track) error
}

// Service manages the music track library behind the quiz.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a track. The thumbnail is derived from the video id; new
// tracks start ACTIVE.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Track, error) {
	exists, err := s.store.ExistsByVideoID(ctx, req.VideoID)
	if err != nil {
		return Track{}, err
	}
	if exists {
		return Track{}, ErrDuplicateVideo
	}

	t := Track{
		VideoID:      req.VideoID,
		StartSeconds: req.StartSeconds,
		ThumbnailURL: ThumbnailURLOf(req.VideoID),
		Status:       StatusActive,
		Title:        req.Title,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
	}
	if err := s.store.Create(ctx, &t); err != nil {
		return Track{}, err
	}
	return t, nil
}

// List returns tracks, optionally narrowed by status and a category substring.
func (s *Service) List(ctx context.Context, status *Status, category string) ([]Track, error) {
	return s.store.List(ctx, status, category)
}

// Update applies partial changes. Changing the video id re-derives the
// thumbnail unless an explicit one is supplied, and re-checks uniqueness.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Track, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Track{}, err
	}

	if req.VideoID != nil && *req.VideoID != t.VideoID {
		exists, err := s.store.ExistsByVideoID(ctx, *req.VideoID)
		if err != nil {
			return Track{}, err
		}
		if exists {
			return Track{}, ErrDuplicateVideo
		}
		t.VideoID = *req.VideoID
		t.ThumbnailURL = ThumbnailURLOf(*req.VideoID)
	}
	if req.StartSeconds != nil {
		t.StartSeconds = *req.StartSeconds
	}
	if req.ThumbnailURL != nil {
		t.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.ImageURL != nil {
		t.ImageURL = req.ImageURL
	}
	if req.Category != nil {
		t.Category = req.Category
	}
	if req.Difficulty != nil {
		t.Difficulty = req.Difficulty
	}

	if err := s.store.Update(ctx, &t); err != nil {
		return Track{}, err
	}
	return t, nil
}
