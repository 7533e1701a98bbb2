package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yoonseo-dev/tinytunes/internal/user"
)

// Store defines the persistence operations the service needs.
type Store interface {
	Insert(ctx context.Context, c *Category) error
	GetLive(ctx context.Context, id uuid.UUID) (Category, error)
	FindLiveByName(ctx context.Context, name string) (*Category, error)
	ListLive(ctx context.Context) ([]Category, error)
	ListVisible(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ListStore caches the two list query shapes (implemented by the Redis-backed
// ListCache).
type ListStore interface {
	Get(ctx context.Context, key string) ([]Category, error)
	Set(ctx context.Context, key string, categories []Category) error
	Invalidate(ctx context.Context) error
}

// Service manages quiz categories. List reads go through an expiring cache
// which every write invalidates.
type Service struct {
	store  Store
	cache  ListStore
	logger zerolog.Logger
}

func NewService(store Store, cache ListStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger.With().Str("component", "category_service").Logger(),
	}
}

// Create registers a new category.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Category, error) {
	c := Category{
		Name:         req.Name,
		Visible:      req.Visible,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.store.Insert(ctx, &c); err != nil {
		return Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

// ListVisible returns visible categories ordered by display order. When the
// caller is a user with an allowed-category restriction, the list is narrowed
// to those ids.
func (s *Service) ListVisible(ctx context.Context, u *user.AppUser) ([]Category, error) {
	categories, err := s.cachedList(ctx, cacheKeyVisible, s.store.ListVisible)
	if err != nil {
		return nil, err
	}
	if u == nil || len(u.AllowedCategoryIDs) == 0 {
		return categories, nil
	}
	allowed := make(map[uuid.UUID]struct{}, len(u.AllowedCategoryIDs))
	for _, id := range u.AllowedCategoryIDs {
		allowed[id] = struct{}{}
	}
	filtered := make([]Category, 0, len(categories))
	for _, c := range categories {
		if _, ok := allowed[c.ID]; ok {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// ListAll returns every live category including hidden ones.
func (s *Service) ListAll(ctx context.Context) ([]Category, error) {
	return s.cachedList(ctx, cacheKeyAll, s.store.ListLive)
}

// Get fetches one live category.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	return s.store.GetLive(ctx, id)
}

// Update applies partial changes to a live category.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Category, error) {
	c, err := s.store.GetLive(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.ImageURL != nil {
		c.ImageURL = req.ImageURL
	}
	if req.Visible != nil {
		c.Visible = *req.Visible
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}
	if err := s.store.Update(ctx, &c); err != nil {
		return Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

// Delete soft-deletes a category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// FindOrCreateByName returns the live category with the given name, creating
// a visible one when none exists. A differing image url on the existing row
// is updated in place.
func (s *Service) FindOrCreateByName(ctx context.Context, name string, imageURL *string) (Category, error) {
	existing, err := s.store.FindLiveByName(ctx, name)
	if err != nil {
		return Category{}, err
	}
	if existing != nil {
		if imageURL != nil && (existing.ImageURL == nil || *existing.ImageURL != *imageURL) {
			existing.ImageURL = imageURL
			if err := s.store.Update(ctx, existing); err != nil {
				return Category{}, err
			}
			s.invalidate(ctx)
		}
		return *existing, nil
	}

	c := Category{Name: name, ImageURL: imageURL, Visible: true}
	if err := s.store.Insert(ctx, &c); err != nil {
		return Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

// SetImage points a category's image at the given url.
func (s *Service) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (Category, error) {
	return s.Update(ctx, id, UpdateRequest{ImageURL: &imageURL})
}

func (s *Service) cachedList(ctx context.Context, key string, load func(context.Context) ([]Category, error)) ([]Category, error) {
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("category cache read failed")
	}

	categories, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if err := s.cache.Set(ctx, key, categories); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("category cache write failed")
	}
	return categories, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
