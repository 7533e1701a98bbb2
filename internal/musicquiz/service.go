package musicquiz

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store defines the persistence operations the service needs.
type Store interface {
	Insert(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (Quiz, error)
	List(ctx context.Context, limit, offset int) ([]Quiz, error)
	Count(ctx context.Context) (int64, error)
	ListByCategory(ctx context.Context, cat Category) ([]Quiz, error)
	Random(ctx context.Context, cat *Category) (Quiz, error)
	Update(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages free-text song quizzes.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Quiz, error) {
	q := Quiz{
		MusicURL: req.MusicURL,
		Answer:   req.Answer,
		ImageURL: req.ImageURL,
		Title:    req.Title,
		Category: req.Category,
	}
	if err := s.store.Insert(ctx, &q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Quiz, error) {
	return s.store.GetByID(ctx, id)
}

// GetForGame returns the quiz with its answer withheld.
func (s *Service) GetForGame(ctx context.Context, id uuid.UUID) (GameView, error) {
	q, err := s.store.GetByID(ctx, id)
	if err != nil {
		return GameView{}, err
	}
	return q.ForGame(), nil
}

// List returns one page of quizzes, newest first. Page numbers start at 0;
// out-of-range sizes fall back to the default.
func (s *Service) List(ctx context.Context, page, size int) (Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return Page{}, err
	}
	items, err := s.store.List(ctx, size, page*size)
	if err != nil {
		return Page{}, err
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) ListByCategory(ctx context.Context, cat Category) ([]Quiz, error) {
	return s.store.ListByCategory(ctx, cat)
}

// Random picks one quiz uniformly at random, optionally within a category,
// with its answer withheld.
func (s *Service) Random(ctx context.Context, cat *Category) (GameView, error) {
	q, err := s.store.Random(ctx, cat)
	if err != nil {
		return GameView{}, err
	}
	return q.ForGame(), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Quiz, error) {
	q, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	if req.MusicURL != nil {
		q.MusicURL = *req.MusicURL
	}
	if req.Answer != nil {
		q.Answer = *req.Answer
	}
	if req.ImageURL != nil {
		q.ImageURL = req.ImageURL
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Category != nil {
		q.Category = *req.Category
	}
	if err := s.store.Update(ctx, &q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// CheckAnswer compares a player's guess against the stored answer. The guess
// is trimmed and matched case-insensitively.
func (s *Service) CheckAnswer(ctx context.Context, id uuid.UUID, userAnswer string) (AnswerResult, error) {
	q, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AnswerResult{}, err
	}
	correct := strings.EqualFold(q.Answer, strings.TrimSpace(userAnswer))
	msg := "Wrong answer, try again!"
	if correct {
		msg = "Correct!"
	}
	return AnswerResult{
		IsCorrect:     correct,
		CorrectAnswer: q.Answer,
		Message:       msg,
	}, nil
}
