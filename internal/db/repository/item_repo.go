package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yoonseo-dev/tinytunes/internal/item"
)

const itemColumns = `id, category_id, image_url, name, name_voice, questions, deleted_at, created_at, updated_at`

// ItemRepository persists quiz items; question lists are stored as JSONB.
type ItemRepository struct {
	db Querier
}

func NewItemRepository(db Querier) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Insert(ctx context.Context, it *item.Item) error {
	questions, err := json.Marshal(it.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO quiz_items (category_id, image_url, name, name_voice, questions)
		VALUES ($1::uuid, $2, $3, $4, $5::jsonb)
		RETURNING id, created_at, updated_at`,
		it.CategoryID.String(), it.ImageURL, it.Name, it.NameVoice, questions,
	)
	if err := row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// InsertMany inserts the given items one by one. Bulk creation is an admin
// operation on dozens of rows at most; a batch API is not worth the
// round-trip savings here.
func (r *ItemRepository) InsertMany(ctx context.Context, items []item.Item) ([]item.Item, error) {
	out := make([]item.Item, 0, len(items))
	for _, it := range items {
		if err := r.Insert(ctx, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *ItemRepository) GetLive(ctx context.Context, id uuid.UUID) (item.Item, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM quiz_items WHERE id = $1 AND deleted_at IS NULL`,
		id.String())
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return item.Item{}, item.ErrNotFound
	}
	return it, err
}

func (r *ItemRepository) GetLiveByName(ctx context.Context, name string) (item.Item, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM quiz_items WHERE name = $1 AND deleted_at IS NULL`,
		name)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return item.Item{}, item.ErrNotFound
	}
	return it, err
}

func (r *ItemRepository) ListLiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]item.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+` FROM quiz_items
		WHERE category_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`,
		categoryID.String())
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Random picks one live item uniformly at random, optionally within a
// category.
func (r *ItemRepository) Random(ctx context.Context, categoryID *uuid.UUID) (item.Item, error) {
	var catArg *string
	if categoryID != nil {
		s := categoryID.String()
		catArg = &s
	}
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM quiz_items
		WHERE deleted_at IS NULL
		  AND ($1::uuid IS NULL OR category_id = $1::uuid)
		ORDER BY random()
		LIMIT 1`,
		catArg)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return item.Item{}, item.ErrNotFound
	}
	return it, err
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	questions, err := json.Marshal(it.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		UPDATE quiz_items
		SET category_id = $2::uuid, image_url = $3, name = $4, name_voice = $5,
		    questions = $6::jsonb, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`,
		it.ID.String(), it.CategoryID.String(), it.ImageURL, it.Name, it.NameVoice, questions,
	)
	if err := row.Scan(&it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item.ErrNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (r *ItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quiz_items SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		id.String())
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return item.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (item.Item, error) {
	var (
		it           item.Item
		rawID        string
		rawCategory  string
		rawQuestions []byte
	)
	err := row.Scan(&rawID, &rawCategory, &it.ImageURL, &it.Name, &it.NameVoice,
		&rawQuestions, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return item.Item{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return item.Item{}, fmt.Errorf("parse item id: %w", err)
	}
	categoryID, err := uuid.Parse(rawCategory)
	if err != nil {
		return item.Item{}, fmt.Errorf("parse item category id: %w", err)
	}
	it.ID = id
	it.CategoryID = categoryID
	if err := json.Unmarshal(rawQuestions, &it.Questions); err != nil {
		return item.Item{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	return it, nil
}
