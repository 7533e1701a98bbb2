package track

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	tracks map[uuid.UUID]Track
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tracks: make(map[uuid.UUID]Track)}
}

func (m *memoryStore) Create(ctx context.Context, t *Track) error {
	t.ID = uuid.New()
	m.tracks[t.ID] = *t
	return nil
}

func (m *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (Track, error) {
	t, ok := m.tracks[id]
	if !ok {
		return Track{}, ErrNotFound
	}
	return t, nil
}

func (m *memoryStore) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	for _, t := range m.tracks {
		if t.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) List(ctx context.Context, status *Status, category string) ([]Track, error) {
	out := make([]Track, 0, len(m.tracks))
	for _, t := range m.tracks {
		if status != nil && t.Status != *status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryStore) Update(ctx context.Context, t *Track) error {
	if _, ok := m.tracks[t.ID]; !ok {
		return ErrNotFound
	}
	m.tracks[t.ID] = *t
	return nil
}

func TestCreateDerivesThumbnailAndStartsActive(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{
		VideoID:      "dQw4w9WgXcQ",
		Title:        "Never Gonna Give You Up",
		StartSeconds: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", created.ThumbnailURL)
	assert.Equal(t, 42, created.StartSeconds)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateRejectsDuplicateVideo(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.Create(context.Background(), CreateRequest{VideoID: "abc123", Title: "First"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{VideoID: "abc123", Title: "Second"})
	assert.ErrorIs(t, err, ErrDuplicateVideo)
}

func TestUpdateVideoRederivesThumbnail(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), CreateRequest{VideoID: "old-video", Title: "Song"})
	require.NoError(t, err)

	newVideo := "new-video"
	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{VideoID: &newVideo})
	require.NoError(t, err)

	assert.Equal(t, "new-video", updated.VideoID)
	assert.Equal(t, ThumbnailURLOf("new-video"), updated.ThumbnailURL)
}

func TestUpdateExplicitThumbnailWins(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{VideoID: "vid-1", Title: "Song"})
	require.NoError(t, err)

	newVideo := "vid-2"
	custom := "https://cdn.example.com/custom.jpg"
	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{
		VideoID:      &newVideo,
		ThumbnailURL: &custom,
	})
	require.NoError(t, err)

	assert.Equal(t, custom, updated.ThumbnailURL)
}

func TestUpdateRejectsVideoCollision(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.Create(context.Background(), CreateRequest{VideoID: "taken", Title: "A"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateRequest{VideoID: "free", Title: "B"})
	require.NoError(t, err)

	taken := "taken"
	_, err = svc.Update(context.Background(), second.ID, UpdateRequest{VideoID: &taken})
	assert.ErrorIs(t, err, ErrDuplicateVideo)
}

func TestUpdateUnknownTrack(t *testing.T) {
	svc := NewService(newMemoryStore())

	title := "nope"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusToggle(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{VideoID: "vid", Title: "Song"})
	require.NoError(t, err)

	inactive := StatusInactive
	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)

	active := StatusActive
	all, err := svc.List(context.Background(), &active, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}
