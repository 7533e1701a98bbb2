package game

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultTokenTTL bounds how long an issued token stays answerable.
const DefaultTokenTTL = 10 * time.Minute

// TokenPayload is the decoded content of a question token. It exists only
// inside the encoded string and is never persisted.
type TokenPayload struct {
	CorrectID uuid.UUID
	ChoiceIDs []uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type wirePayload struct {
	CorrectID string   `json:"cid"`
	ChoiceIDs []string `json:"choices"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// Codec encodes question payloads into opaque URL-safe tokens and back.
// Tokens are reversibly encoded but not signed; anyone holding the format can
// read or forge one. Expiry is the only check performed on decode.
type Codec struct {
	ttl time.Duration
	now func() time.Time
}

// NewCodec builds a codec with the given TTL. A zero ttl falls back to
// DefaultTokenTTL; a nil clock falls back to time.Now.
func NewCodec(ttl time.Duration, now func() time.Time) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{ttl: ttl, now: now}
}

// Encode serializes {correct id, choice ids, issuedAt, expiresAt} into a
// compact token safe for query parameters and JSON bodies.
func (c *Codec) Encode(correctID uuid.UUID, choiceIDs []uuid.UUID) (string, error) {
	issued := c.now()
	wire := wirePayload{
		CorrectID: correctID.String(),
		ChoiceIDs: make([]string, len(choiceIDs)),
		IssuedAt:  issued.Unix(),
		ExpiresAt: issued.Add(c.ttl).Unix(),
	}
	for i, id := range choiceIDs {
		wire.ChoiceIDs[i] = id.String()
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. It fails with ErrMalformedToken on any structural
// problem and with ErrExpiredToken once the validity window has passed; a
// token decoded at exactly its expiry instant counts as expired.
func (c *Codec) Decode(token string) (TokenPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return TokenPayload{}, ErrMalformedToken
	}

	var wire wirePayload
	if err := json.Unmarshal(raw, &wire); err != nil {
		return TokenPayload{}, ErrMalformedToken
	}
	if wire.CorrectID == "" || len(wire.ChoiceIDs) == 0 || wire.IssuedAt == 0 || wire.ExpiresAt == 0 {
		return TokenPayload{}, ErrMalformedToken
	}

	correctID, err := uuid.Parse(wire.CorrectID)
	if err != nil {
		return TokenPayload{}, ErrMalformedToken
	}
	choiceIDs := make([]uuid.UUID, len(wire.ChoiceIDs))
	for i, s := range wire.ChoiceIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return TokenPayload{}, ErrMalformedToken
		}
		choiceIDs[i] = id
	}

	if c.now().Unix() >= wire.ExpiresAt {
		return TokenPayload{}, ErrExpiredToken
	}

	return TokenPayload{
		CorrectID: correctID,
		ChoiceIDs: choiceIDs,
		IssuedAt:  time.Unix(wire.IssuedAt, 0),
		ExpiresAt: time.Unix(wire.ExpiresAt, 0),
	}, nil
}
