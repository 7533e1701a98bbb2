package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yoonseo-dev/tinytunes/internal/user"
)

const userColumns = `id, api_key, nickname, device_id, platform, allowed_category_ids, active, created_at, updated_at`

// UserRepository persists app users.
type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, u *user.AppUser) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO app_users (api_key, nickname, device_id, platform, allowed_category_ids, active)
		VALUES ($1, $2, $3, $4, $5::uuid[], $6)
		RETURNING id, created_at, updated_at`,
		u.APIKey, u.Nickname, u.DeviceID, u.Platform, uuidStrings(u.AllowedCategoryIDs), u.Active,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.AppUser, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_users WHERE id = $1`, id.String())
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.AppUser{}, user.ErrNotFound
	}
	return u, err
}

func (r *UserRepository) FindByAPIKey(ctx context.Context, apiKey string) (*user.AppUser, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_users WHERE api_key = $1`, apiKey)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByDeviceID(ctx context.Context, deviceID string) (*user.AppUser, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_users WHERE device_id = $1`, deviceID)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.AppUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM app_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []user.AppUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) UpdateAllowedCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) (user.AppUser, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE app_users SET allowed_category_ids = $2::uuid[], updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id.String(), uuidStrings(categoryIDs))
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.AppUser{}, user.ErrNotFound
	}
	return u, err
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (user.AppUser, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE app_users SET active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id.String(), active)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.AppUser{}, user.ErrNotFound
	}
	return u, err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func scanUser(row pgx.Row) (user.AppUser, error) {
	var (
		u          user.AppUser
		rawID      string
		rawAllowed []string
	)
	err := row.Scan(&rawID, &u.APIKey, &u.Nickname, &u.DeviceID, &u.Platform,
		&rawAllowed, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.AppUser{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return user.AppUser{}, fmt.Errorf("parse user id: %w", err)
	}
	u.ID = id
	u.AllowedCategoryIDs = make([]uuid.UUID, 0, len(rawAllowed))
	for _, s := range rawAllowed {
		cid, err := uuid.Parse(s)
		if err != nil {
			return user.AppUser{}, fmt.Errorf("parse allowed category id: %w", err)
		}
		u.AllowedCategoryIDs = append(u.AllowedCategoryIDs, cid)
	}
	return u, nil
}
