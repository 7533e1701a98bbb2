package game

import (
	"errors"

	"github.com/google/uuid"
)

// Terminal conditions of the quiz protocol. All map to client-facing 4xx
// responses; none is retriable.
var (
	ErrInsufficientPool = errors.New("not enough active tracks to build a question")
	ErrMalformedToken   = errors.New("malformed question token")
	ErrExpiredToken     = errors.New("expired question token")
	ErrInvalidSelection = errors.New("selected track is not among the choices")
)

// Media identifies the playable clip for the question prompt. It always
// belongs to the correct track: the client plays this clip and picks the
// matching thumbnail.
type Media struct {
	VideoID      string `json:"videoId"`
	StartSeconds int    `json:"startSeconds"`
}

// Choice is the non-revealing descriptor shown for one option.
type Choice struct {
	TrackID      uuid.UUID `json:"trackId"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// Question is one issued quiz round. The token carries everything the server
// needs to verify an answer later; no state is kept between the two calls.
type Question struct {
	Token          string   `json:"questionToken"`
	PreviewSeconds int      `json:"previewSeconds"`
	Media          Media    `json:"video"`
	Choices        []Choice `json:"choices"`
}

// AnswerResult reports the outcome of an answer check. The correct id is
// always disclosed; the round is over either way.
type AnswerResult struct {
	IsCorrect      bool      `json:"isCorrect"`
	CorrectTrackID uuid.UUID `json:"correctTrackId"`
}
