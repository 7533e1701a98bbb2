package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yoonseo-dev/tinytunes/internal/musicquiz"
)

const musicQuizColumns = `id, music_url, answer, image_url, title, category, created_at, updated_at`

// MusicQuizRepository persists free-text song quizzes. Rows are deleted for
// real; the table carries no soft-delete marker.
type MusicQuizRepository struct {
	db Querier
}

func NewMusicQuizRepository(db Querier) *MusicQuizRepository {
	return &MusicQuizRepository{db: db}
}

func (r *MusicQuizRepository) Insert(ctx context.Context, q *musicquiz.Quiz) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO music_quizzes (music_url, answer, image_url, title, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		q.MusicURL, q.Answer, q.ImageURL, q.Title, string(q.Category),
	)
	if err := row.Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return fmt.Errorf("insert music quiz: %w", err)
	}
	return nil
}

func (r *MusicQuizRepository) GetByID(ctx context.Context, id uuid.UUID) (musicquiz.Quiz, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+musicQuizColumns+` FROM music_quizzes WHERE id = $1`,
		id.String())
	q, err := scanMusicQuiz(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return musicquiz.Quiz{}, musicquiz.ErrNotFound
	}
	return q, err
}

func (r *MusicQuizRepository) List(ctx context.Context, limit, offset int) ([]musicquiz.Quiz, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+musicQuizColumns+` FROM music_quizzes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list music quizzes: %w", err)
	}
	defer rows.Close()
	return collectMusicQuizzes(rows)
}

func (r *MusicQuizRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM music_quizzes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count music quizzes: %w", err)
	}
	return n, nil
}

func (r *MusicQuizRepository) ListByCategory(ctx context.Context, cat musicquiz.Category) ([]musicquiz.Quiz, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+musicQuizColumns+` FROM music_quizzes
		WHERE category = $1
		ORDER BY created_at DESC`,
		string(cat))
	if err != nil {
		return nil, fmt.Errorf("list music quizzes: %w", err)
	}
	defer rows.Close()
	return collectMusicQuizzes(rows)
}

// Random picks one quiz uniformly at random, optionally within a category.
func (r *MusicQuizRepository) Random(ctx context.Context, cat *musicquiz.Category) (musicquiz.Quiz, error) {
	var catArg *string
	if cat != nil {
		s := string(*cat)
		catArg = &s
	}
	row := r.db.QueryRow(ctx, `
		SELECT `+musicQuizColumns+` FROM music_quizzes
		WHERE ($1::text IS NULL OR category = $1)
		ORDER BY random()
		LIMIT 1`,
		catArg)
	q, err := scanMusicQuiz(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return musicquiz.Quiz{}, musicquiz.ErrNotFound
	}
	return q, err
}

func (r *MusicQuizRepository) Update(ctx context.Context, q *musicquiz.Quiz) error {
	row := r.db.QueryRow(ctx, `
		UPDATE music_quizzes
		SET music_url = $2, answer = $3, image_url = $4, title = $5,
		    category = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		q.ID.String(), q.MusicURL, q.Answer, q.ImageURL, q.Title, string(q.Category),
	)
	if err := row.Scan(&q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return musicquiz.ErrNotFound
		}
		return fmt.Errorf("update music quiz: %w", err)
	}
	return nil
}

func (r *MusicQuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM music_quizzes WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete music quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return musicquiz.ErrNotFound
	}
	return nil
}

func collectMusicQuizzes(rows pgx.Rows) ([]musicquiz.Quiz, error) {
	var out []musicquiz.Quiz
	for rows.Next() {
		q, err := scanMusicQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMusicQuiz(row pgx.Row) (musicquiz.Quiz, error) {
	var (
		q           musicquiz.Quiz
		rawID       string
		rawCategory string
	)
	err := row.Scan(&rawID, &q.MusicURL, &q.Answer, &q.ImageURL, &q.Title,
		&rawCategory, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return musicquiz.Quiz{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return musicquiz.Quiz{}, fmt.Errorf("parse music quiz id: %w", err)
	}
	q.ID = id
	q.Category = musicquiz.Category(rawCategory)
	return q, nil
}
