package musicquiz

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	quizzes map[uuid.UUID]Quiz
	seq     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{quizzes: make(map[uuid.UUID]Quiz)}
}

func (m *memoryStore) Insert(ctx context.Context, q *Quiz) error {
	q.ID = uuid.New()
	m.seq++
	q.CreatedAt = time.Unix(int64(m.seq), 0)
	q.UpdatedAt = q.CreatedAt
	m.quizzes[q.ID] = *q
	return nil
}

func (m *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (Quiz, error) {
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) sorted() []Quiz {
	out := make([]Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryStore) List(ctx context.Context, limit, offset int) ([]Quiz, error) {
	all := m.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memoryStore) Count(ctx context.Context) (int64, error) {
	return int64(len(m.quizzes)), nil
}

func (m *memoryStore) ListByCategory(ctx context.Context, cat Category) ([]Quiz, error) {
	var out []Quiz
	for _, q := range m.sorted() {
		if q.Category == cat {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) Random(ctx context.Context, cat *Category) (Quiz, error) {
	for _, q := range m.quizzes {
		if cat != nil && q.Category != *cat {
			continue
		}
		return q, nil
	}
	return Quiz{}, ErrNotFound
}

func (m *memoryStore) Update(ctx context.Context, q *Quiz) error {
	if _, ok := m.quizzes[q.ID]; !ok {
		return ErrNotFound
	}
	m.quizzes[q.ID] = *q
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quizzes, id)
	return nil
}

func TestCheckAnswer(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/twinkle.mp3",
		Answer:   "Twinkle Twinkle Little Star",
		Title:    "Guess the lullaby",
		Category: CategoryNurseryRhyme,
	})
	require.NoError(t, err)

	cases := []struct {
		name    string
		guess   string
		correct bool
	}{
		{"exact match", "Twinkle Twinkle Little Star", true},
		{"case insensitive", "twinkle twinkle little star", true},
		{"surrounding whitespace trimmed", "  Twinkle Twinkle Little Star  ", true},
		{"wrong answer", "Baa Baa Black Sheep", false},
		{"inner whitespace still matters", "TwinkleTwinkle Little Star", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.CheckAnswer(context.Background(), created.ID, tc.guess)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, result.IsCorrect)
			assert.Equal(t, "Twinkle Twinkle Little Star", result.CorrectAnswer)
			assert.NotEmpty(t, result.Message)
		})
	}

	_, err = svc.CheckAnswer(context.Background(), uuid.New(), "anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameViewHidesAnswer(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/twinkle.mp3",
		Answer:   "Twinkle Twinkle Little Star",
		Title:    "Guess the lullaby",
		Category: CategoryNurseryRhyme,
	})
	require.NoError(t, err)

	view, err := svc.GetForGame(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, created.MusicURL, view.MusicURL)

	encoded, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "Twinkle Twinkle Little Star")
	assert.NotContains(t, string(encoded), "answer")
}

func TestRandomScopedToCategory(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/twinkle.mp3",
		Answer:   "Twinkle Twinkle Little Star",
		Title:    "Guess the lullaby",
		Category: CategoryNurseryRhyme,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/let-it-go.mp3",
		Answer:   "Let It Go",
		Title:    "Guess the movie song",
		Category: CategoryDisney,
	})
	require.NoError(t, err)

	disney := CategoryDisney
	view, err := svc.Random(context.Background(), &disney)
	require.NoError(t, err)
	assert.Equal(t, CategoryDisney, view.Category)

	kidsPop := CategoryKidsPop
	_, err = svc.Random(context.Background(), &kidsPop)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Random(context.Background(), nil)
	assert.NoError(t, err)
}

func TestListPagination(t *testing.T) {
	svc := NewService(newMemoryStore())

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), CreateRequest{
			MusicURL: "https://cdn.example.com/song.mp3",
			Answer:   "Song",
			Title:    "Guess the song",
			Category: CategoryKidsPop,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, int64(5), first.TotalCount)
	assert.Equal(t, 3, first.TotalPages)

	last, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	// Newest first across pages, no overlaps.
	assert.True(t, first.Items[0].CreatedAt.After(last.Items[0].CreatedAt))

	defaulted, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, defaulted.Page)
	assert.Equal(t, defaultPageSize, defaulted.Size)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/twinkle.mp3",
		Answer:   "Twinkle Twinkle Little Star",
		Title:    "Guess the lullaby",
		Category: CategoryNurseryRhyme,
	})
	require.NoError(t, err)

	answer := "Twinkle Twinkle"
	cat := CategoryEducation
	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{
		Answer:   &answer,
		Category: &cat,
	})
	require.NoError(t, err)
	assert.Equal(t, "Twinkle Twinkle", updated.Answer)
	assert.Equal(t, CategoryEducation, updated.Category)
	assert.Equal(t, created.MusicURL, updated.MusicURL)
	assert.Equal(t, created.Title, updated.Title)
}

func TestDeleteRemovesQuiz(t *testing.T) {
	svc := NewService(newMemoryStore())

	created, err := svc.Create(context.Background(), CreateRequest{
		MusicURL: "https://cdn.example.com/twinkle.mp3",
		Answer:   "Twinkle Twinkle Little Star",
		Title:    "Guess the lullaby",
		Category: CategoryNurseryRhyme,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}
