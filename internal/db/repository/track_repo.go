package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yoonseo-dev/tinytunes/internal/track"
)

// Querier is the subset of pgxpool.Pool the repositories need.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const trackColumns = `id, video_id, start_seconds, thumbnail_url, status, title, image_url, category, difficulty, created_at, updated_at`

// TrackRepository persists music tracks and serves random pool samples.
type TrackRepository struct {
	db Querier
}

func NewTrackRepository(db Querier) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a track and fills in generated fields.
func (r *TrackRepository) Create(ctx context.Context, t *track.Track) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO music_tracks (video_id, start_seconds, thumbnail_url, status, title, image_url, category, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		t.VideoID, t.StartSeconds, t.ThumbnailURL, t.Status, t.Title, t.ImageURL, t.Category, t.Difficulty,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("insert track: %w", err)
	}
	return nil
}

// GetByID fetches a single track.
func (r *TrackRepository) GetByID(ctx context.Context, id uuid.UUID) (track.Track, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+trackColumns+` FROM music_tracks WHERE id = $1`, id.String())
	t, err := scanTrack(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return track.Track{}, track.ErrNotFound
	}
	return t, err
}

// ExistsByVideoID reports whether a track with the given video id is registered.
func (r *TrackRepository) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM music_tracks WHERE video_id = $1)`, videoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check video id: %w", err)
	}
	return exists, nil
}

// List returns tracks, optionally narrowed by status and a category substring.
func (r *TrackRepository) List(ctx context.Context, status *track.Status, category string) ([]track.Track, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+trackColumns+`
		FROM music_tracks
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2 = '' OR category ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC`,
		statusArg(status), category,
	)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// Update persists all mutable fields of a track.
func (r *TrackRepository) Update(ctx context.Context, t *track.Track) error {
	row := r.db.QueryRow(ctx, `
		UPDATE music_tracks
		SET video_id = $2, start_seconds = $3, thumbnail_url = $4, status = $5,
		    title = $6, image_url = $7, category = $8, difficulty = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID.String(), t.VideoID, t.StartSeconds, t.ThumbnailURL, t.Status, t.Title, t.ImageURL, t.Category, t.Difficulty,
	)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return track.ErrNotFound
		}
		return fmt.Errorf("update track: %w", err)
	}
	return nil
}

// Sample returns up to count uniformly random ACTIVE tracks matching the
// filter. Rows within one call are distinct; callers must handle short reads
// when the pool is exhausted.
func (r *TrackRepository) Sample(ctx context.Context, count int, filter track.SampleFilter) ([]track.Track, error) {
	exclude := make([]string, len(filter.ExcludeIDs))
	for i, id := range filter.ExcludeIDs {
		exclude[i] = id.String()
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+trackColumns+`
		FROM music_tracks
		WHERE status = 'ACTIVE'
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR difficulty = $2)
		  AND NOT (id = ANY($3::uuid[]))
		ORDER BY random()
		LIMIT $4`,
		filter.Category, filter.Difficulty, exclude, count,
	)
	if err != nil {
		return nil, fmt.Errorf("sample tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

func statusArg(status *track.Status) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

func scanTrack(row pgx.Row) (track.Track, error) {
	var (
		t     track.Track
		rawID string
	)
	err := row.Scan(&rawID, &t.VideoID, &t.StartSeconds, &t.ThumbnailURL, &t.Status,
		&t.Title, &t.ImageURL, &t.Category, &t.Difficulty, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return track.Track{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return track.Track{}, fmt.Errorf("parse track id: %w", err)
	}
	t.ID = id
	return t, nil
}

func collectTracks(rows pgx.Rows) ([]track.Track, error) {
	var out []track.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
