package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoonseo-dev/tinytunes/internal/track"
)

// poolSampler fakes the store-level random sampler over a fixed pool. It
// honors the exclusion set and count but returns tracks in pool order, which
// is exactly what the composer must not rely on.
type poolSampler struct {
	pool []track.Track
}

func (s *poolSampler) Sample(_ context.Context, count int, filter track.SampleFilter) ([]track.Track, error) {
	excluded := make(map[uuid.UUID]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	var out []track.Track
	for _, t := range s.pool {
		if len(out) == count {
			break
		}
		if _, skip := excluded[t.ID]; skip {
			continue
		}
		if filter.Category != "" && (t.Category == nil || *t.Category != filter.Category) {
			continue
		}
		if filter.Difficulty != "" && (t.Difficulty == nil || *t.Difficulty != filter.Difficulty) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type failingSampler struct{ err error }

func (s *failingSampler) Sample(context.Context, int, track.SampleFilter) ([]track.Track, error) {
	return nil, s.err
}

func makePool(n int) []track.Track {
	pool := make([]track.Track, n)
	for i := range pool {
		id := uuid.New()
		pool[i] = track.Track{
			ID:           id,
			VideoID:      "vid-" + id.String()[:8],
			StartSeconds: i * 10,
			ThumbnailURL: track.ThumbnailURLOf("vid-" + id.String()[:8]),
			Status:       track.StatusActive,
			Title:        "Track",
		}
	}
	return pool
}

func newTestService(sampler TrackSampler) *Service {
	codec := NewCodec(10*time.Minute, nil)
	return NewService(sampler, codec, ServiceOptions{})
}

func TestGenerateQuestionSuccess(t *testing.T) {
	pool := makePool(5)
	svc := newTestService(&poolSampler{pool: pool})

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	require.NoError(t, err)

	assert.Len(t, q.Choices, DefaultChoiceCount)
	assert.Equal(t, DefaultPreviewSeconds, q.PreviewSeconds)
	assert.NotEmpty(t, q.Token)

	seen := make(map[uuid.UUID]struct{})
	matchesMedia := 0
	for _, c := range q.Choices {
		seen[c.TrackID] = struct{}{}
		assert.NotEmpty(t, c.ThumbnailURL)
		for _, p := range pool {
			if p.ID == c.TrackID && p.VideoID == q.Media.VideoID {
				matchesMedia++
			}
		}
	}
	assert.Len(t, seen, DefaultChoiceCount, "choice ids must be pairwise distinct")
	assert.Equal(t, 1, matchesMedia, "exactly one choice owns the prompt media")
}

func TestGenerateQuestionInsufficientPool(t *testing.T) {
	svc := newTestService(&poolSampler{pool: makePool(3)})

	_, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestGenerateQuestionEmptyPool(t *testing.T) {
	svc := newTestService(&poolSampler{})

	_, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestGenerateQuestionSamplerError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&failingSampler{err: boom})

	_, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInsufficientPool)
}

func TestGenerateQuestionHonorsExcludes(t *testing.T) {
	pool := makePool(6)
	svc := newTestService(&poolSampler{pool: pool})
	banned := []uuid.UUID{pool[0].ID, pool[1].ID}

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{ExcludeIDs: banned})
	require.NoError(t, err)
	for _, c := range q.Choices {
		assert.NotContains(t, banned, c.TrackID)
	}
}

func TestGenerateQuestionFiltersByCategory(t *testing.T) {
	pool := makePool(8)
	nursery := "nursery"
	for i := 0; i < 4; i++ {
		pool[i].Category = &nursery
	}
	svc := newTestService(&poolSampler{pool: pool})

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{Category: nursery})
	require.NoError(t, err)

	allowed := make(map[uuid.UUID]struct{})
	for i := 0; i < 4; i++ {
		allowed[pool[i].ID] = struct{}{}
	}
	for _, c := range q.Choices {
		_, ok := allowed[c.TrackID]
		assert.True(t, ok, "choices must come from the filtered pool")
	}
}

func TestShuffleDoesNotPinCorrectAnswer(t *testing.T) {
	pool := makePool(5)
	svc := newTestService(&poolSampler{pool: pool})
	byVideo := make(map[string]uuid.UUID, len(pool))
	for _, p := range pool {
		byVideo[p.VideoID] = p.ID
	}

	positions := make(map[int]int)
	for i := 0; i < 200; i++ {
		q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
		require.NoError(t, err)
		correctID := byVideo[q.Media.VideoID]
		for pos, c := range q.Choices {
			if c.TrackID == correctID {
				positions[pos]++
			}
		}
	}
	// With 200 uniform shuffles over 4 slots, pinning to fewer than 2
	// positions is astronomically unlikely.
	assert.Greater(t, len(positions), 1, "correct answer position must vary")
}

func TestCheckAnswerCorrectAndIncorrect(t *testing.T) {
	pool := makePool(5)
	svc := newTestService(&poolSampler{pool: pool})
	byVideo := make(map[string]uuid.UUID, len(pool))
	for _, p := range pool {
		byVideo[p.VideoID] = p.ID
	}

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	require.NoError(t, err)
	correctID := byVideo[q.Media.VideoID]

	result, err := svc.CheckAnswer(q.Token, correctID)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, correctID, result.CorrectTrackID)

	for _, c := range q.Choices {
		if c.TrackID == correctID {
			continue
		}
		result, err := svc.CheckAnswer(q.Token, c.TrackID)
		require.NoError(t, err)
		assert.False(t, result.IsCorrect)
		assert.Equal(t, correctID, result.CorrectTrackID, "true correct id is always disclosed")
	}
}

func TestCheckAnswerIsReplayableWithinTTL(t *testing.T) {
	pool := makePool(5)
	svc := newTestService(&poolSampler{pool: pool})

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	require.NoError(t, err)
	selected := q.Choices[0].TrackID

	first, err := svc.CheckAnswer(q.Token, selected)
	require.NoError(t, err)
	second, err := svc.CheckAnswer(q.Token, selected)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheckAnswerInvalidSelection(t *testing.T) {
	pool := makePool(6)
	svc := newTestService(&poolSampler{pool: pool[:5]})

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	require.NoError(t, err)

	// A real track id that was never offered as a choice.
	outsider := pool[5].ID
	_, err = svc.CheckAnswer(q.Token, outsider)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = svc.CheckAnswer(q.Token, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCheckAnswerPropagatesTokenErrors(t *testing.T) {
	svc := newTestService(&poolSampler{pool: makePool(5)})

	_, err := svc.CheckAnswer("not-a-token!!", uuid.New())
	assert.ErrorIs(t, err, ErrMalformedToken)

	expiredCodec := NewCodec(10*time.Minute, fixedClock(time.Unix(1_000_000_000, 0)))
	correct := uuid.New()
	token, err := expiredCodec.Encode(correct, []uuid.UUID{correct})
	require.NoError(t, err)

	_, err = svc.CheckAnswer(token, correct)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGenerateQuestionCustomChoiceCount(t *testing.T) {
	pool := makePool(7)
	codec := NewCodec(10*time.Minute, nil)
	svc := NewService(&poolSampler{pool: pool}, codec, ServiceOptions{ChoiceCount: 6, PreviewSeconds: 3})

	q, err := svc.GenerateQuestion(context.Background(), GenerateParams{})
	require.NoError(t, err)
	assert.Len(t, q.Choices, 6)
	assert.Equal(t, 3, q.PreviewSeconds)
}
