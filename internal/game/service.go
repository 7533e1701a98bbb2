package game

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/yoonseo-dev/tinytunes/internal/track"
)

// Default gameplay tunables; overridable via ServiceOptions.
const (
	DefaultChoiceCount    = 4
	DefaultPreviewSeconds = 5
)

// TrackSampler returns a uniformly random subset of eligible tracks. Backed
// by the track repository in production and by deterministic fakes in tests.
// It may return fewer tracks than requested when the pool is exhausted; rows
// within one call are distinct.
type TrackSampler interface {
	Sample(ctx context.Context, count int, filter track.SampleFilter) ([]track.Track, error)
}

// Service composes quiz questions and verifies answers. It keeps no state
// between the two calls: everything a verification needs travels inside the
// question token the client carries.
type Service struct {
	sampler        TrackSampler
	codec          *Codec
	choiceCount    int
	previewSeconds int
}

type ServiceOptions struct {
	ChoiceCount    int
	PreviewSeconds int
}

func NewService(sampler TrackSampler, codec *Codec, opts ServiceOptions) *Service {
	if opts.ChoiceCount <= 1 {
		opts.ChoiceCount = DefaultChoiceCount
	}
	if opts.PreviewSeconds <= 0 {
		opts.PreviewSeconds = DefaultPreviewSeconds
	}
	return &Service{
		sampler:        sampler,
		codec:          codec,
		choiceCount:    opts.ChoiceCount,
		previewSeconds: opts.PreviewSeconds,
	}
}

// GenerateParams filters the pool a question is drawn from.
type GenerateParams struct {
	Category   string
	Difficulty string
	ExcludeIDs []uuid.UUID
}

// GenerateQuestion samples one correct track plus distractors, shuffles them,
// and issues a token encoding the correct answer and the full choice set.
// Fails with ErrInsufficientPool when the pool cannot yield enough distinct
// tracks.
func (s *Service) GenerateQuestion(ctx context.Context, params GenerateParams) (Question, error) {
	correct, err := s.sampler.Sample(ctx, 1, track.SampleFilter{
		Category:   params.Category,
		Difficulty: params.Difficulty,
		ExcludeIDs: params.ExcludeIDs,
	})
	if err != nil {
		return Question{}, fmt.Errorf("sample correct track: %w", err)
	}
	if len(correct) == 0 {
		return Question{}, ErrInsufficientPool
	}
	correctTrack := correct[0]

	exclude := make([]uuid.UUID, 0, len(params.ExcludeIDs)+1)
	exclude = append(exclude, params.ExcludeIDs...)
	exclude = append(exclude, correctTrack.ID)

	distractors, err := s.sampler.Sample(ctx, s.choiceCount-1, track.SampleFilter{
		Category:   params.Category,
		Difficulty: params.Difficulty,
		ExcludeIDs: exclude,
	})
	if err != nil {
		return Question{}, fmt.Errorf("sample distractors: %w", err)
	}

	choices := append([]track.Track{correctTrack}, distractors...)
	seen := make(map[uuid.UUID]struct{}, len(choices))
	for _, t := range choices {
		seen[t.ID] = struct{}{}
	}
	if len(choices) != s.choiceCount || len(seen) != s.choiceCount {
		return Question{}, ErrInsufficientPool
	}

	// Shuffle order is visible to the client and must not leak which choice
	// is correct.
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	choiceIDs := make([]uuid.UUID, len(choices))
	for i, t := range choices {
		choiceIDs[i] = t.ID
	}

	token, err := s.codec.Encode(correctTrack.ID, choiceIDs)
	if err != nil {
		return Question{}, fmt.Errorf("encode question token: %w", err)
	}

	question := Question{
		Token:          token,
		PreviewSeconds: s.previewSeconds,
		Media: Media{
			VideoID:      correctTrack.VideoID,
			StartSeconds: correctTrack.StartSeconds,
		},
		Choices: make([]Choice, len(choices)),
	}
	for i, t := range choices {
		question.Choices[i] = Choice{TrackID: t.ID, ThumbnailURL: t.ThumbnailURL}
	}
	return question, nil
}

// CheckAnswer decodes a client-submitted token, requires the selection to be
// one of the encoded choices, and reports correctness. The true correct id is
// returned on every successful check.
func (s *Service) CheckAnswer(token string, selectedID uuid.UUID) (AnswerResult, error) {
	payload, err := s.codec.Decode(token)
	if err != nil {
		return AnswerResult{}, err
	}

	member := false
	for _, id := range payload.ChoiceIDs {
		if id == selectedID {
			member = true
			break
		}
	}
	if !member {
		return AnswerResult{}, ErrInvalidSelection
	}

	return AnswerResult{
		IsCorrect:      selectedID == payload.CorrectID,
		CorrectTrackID: payload.CorrectID,
	}, nil
}
