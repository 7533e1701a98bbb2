package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yoonseo-dev/tinytunes/internal/category"
)

const categoryColumns = `id, name, image_url, visible, display_order, deleted_at, created_at, updated_at`

// CategoryRepository persists quiz categories with soft deletes.
type CategoryRepository struct {
	db Querier
}

func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Insert(ctx context.Context, c *category.Category) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO quiz_categories (name, image_url, visible, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		c.Name, c.ImageURL, c.Visible, c.DisplayOrder,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetLive(ctx context.Context, id uuid.UUID) (category.Category, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM quiz_categories WHERE id = $1 AND deleted_at IS NULL`,
		id.String())
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return category.Category{}, category.ErrNotFound
	}
	return c, err
}

func (r *CategoryRepository) FindLiveByName(ctx context.Context, name string) (*category.Category, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM quiz_categories WHERE name = $1 AND deleted_at IS NULL`,
		name)
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) ListLive(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `
		SELECT `+categoryColumns+` FROM quiz_categories
		WHERE deleted_at IS NULL
		ORDER BY display_order ASC, created_at ASC`)
}

func (r *CategoryRepository) ListVisible(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `
		SELECT `+categoryColumns+` FROM quiz_categories
		WHERE visible AND deleted_at IS NULL
		ORDER BY display_order ASC, created_at ASC`)
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	row := r.db.QueryRow(ctx, `
		UPDATE quiz_categories
		SET name = $2, image_url = $3, visible = $4, display_order = $5, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`,
		c.ID.String(), c.Name, c.ImageURL, c.Visible, c.DisplayOrder,
	)
	if err := row.Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrNotFound
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quiz_categories SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		id.String())
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) list(ctx context.Context, sql string) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCategory(row pgx.Row) (category.Category, error) {
	var (
		c     category.Category
		rawID string
	)
	err := row.Scan(&rawID, &c.Name, &c.ImageURL, &c.Visible, &c.DisplayOrder,
		&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return category.Category{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return category.Category{}, fmt.Errorf("parse category id: %w", err)
	}
	c.ID = id
	return c, nil
}
