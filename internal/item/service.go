package item

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the service needs.
type Store interface {
	Insert(ctx context.Context, it *Item) error
	InsertMany(ctx context.Context, items []Item) ([]Item, error)
	GetLive(ctx context.Context, id uuid.UUID) (Item, error)
	GetLiveByName(ctx context.Context, name string) (Item, error)
	ListLiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]Item, error)
	Random(ctx context.Context, categoryID *uuid.UUID) (Item, error)
	Update(ctx context.Context, it *Item) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Service manages quiz items.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	it := Item{
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		Name:       req.Name,
		NameVoice:  req.NameVoice,
		Questions:  req.Questions,
	}
	if err := s.store.Insert(ctx, &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// BulkCreate inserts every payload under the given category.
func (s *Service) BulkCreate(ctx context.Context, categoryID uuid.UUID, payloads []CreatePayload) ([]Item, error) {
	items := make([]Item, len(payloads))
	for i, p := range payloads {
		items[i] = Item{
			CategoryID: categoryID,
			ImageURL:   p.ImageURL,
			Name:       p.Name,
			NameVoice:  p.NameVoice,
			Questions:  p.Questions,
		}
	}
	return s.store.InsertMany(ctx, items)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Item, error) {
	return s.store.ListLiveByCategory(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	return s.store.GetLive(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Item, error) {
	return s.store.GetLiveByName(ctx, name)
}

// Random picks one live item uniformly at random, optionally within a
// category.
func (s *Service) Random(ctx context.Context, categoryID *uuid.UUID) (Item, error) {
	return s.store.Random(ctx, categoryID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Item, error) {
	it, err := s.store.GetLive(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if req.CategoryID != nil {
		it.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		it.ImageURL = *req.ImageURL
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.NameVoice != nil {
		it.NameVoice = *req.NameVoice
	}
	if req.Questions != nil {
		it.Questions = *req.Questions
	}
	if err := s.store.Update(ctx, &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.SoftDelete(ctx, id)
}
