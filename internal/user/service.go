package user

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the service needs.
type Store interface {
	Insert(ctx context.Context, u *AppUser) error
	GetByID(ctx context.Context, id uuid.UUID) (AppUser, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*AppUser, error)
	FindByDeviceID(ctx context.Context, deviceID string) (*AppUser, error)
	List(ctx context.Context) ([]AppUser, error)
	UpdateAllowedCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) (AppUser, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (AppUser, error)
}

// Service manages app user registration and admin-side user management.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a user with a fresh API key. Registration is idempotent on
// device id: a repeated call for a known device returns the existing account
// and key.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if req.DeviceID != nil && *req.DeviceID != "" {
		existing, err := s.store.FindByDeviceID(ctx, *req.DeviceID)
		if err != nil {
			return RegisterResponse{}, err
		}
		if existing != nil {
			return RegisterResponse{
				UserID:   existing.ID,
				APIKey:   existing.APIKey,
				Nickname: existing.Nickname,
			}, nil
		}
	}

	u := AppUser{
		APIKey:   uuid.NewString(),
		Nickname: req.Nickname,
		DeviceID: req.DeviceID,
		Platform: req.Platform,
		Active:   true,
	}
	if err := s.store.Insert(ctx, &u); err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{UserID: u.ID, APIKey: u.APIKey, Nickname: u.Nickname}, nil
}

// FindByAPIKey resolves the user owning an API key; nil when unknown.
func (s *Service) FindByAPIKey(ctx context.Context, apiKey string) (*AppUser, error) {
	return s.store.FindByAPIKey(ctx, apiKey)
}

func (s *Service) List(ctx context.Context) ([]AppUser, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (AppUser, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateAllowedCategories restricts (or, with an empty set, unrestricts) the
// categories a user may browse.
func (s *Service) UpdateAllowedCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) (AppUser, error) {
	return s.store.UpdateAllowedCategories(ctx, id, categoryIDs)
}

// Deactivate blocks a user's API key without deleting the account.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (AppUser, error) {
	return s.store.SetActive(ctx, id, false)
}
