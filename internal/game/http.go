package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes the quiz endpoints over REST.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "game_http").Logger(),
	}
}

// HandleQuestion handles GET /v1/quiz/question?category=&difficulty=&excludeTrackIds=
func (h *Handlers) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	excludeIDs, err := parseExcludeIDs(r.URL.Query()["excludeTrackIds"])
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "excludeTrackIds must be valid track ids", "excludeTrackIds")
		return
	}

	question, err := h.svc.GenerateQuestion(r.Context(), GenerateParams{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
		ExcludeIDs: excludeIDs,
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientPool) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInsufficientPool, "Not enough tracks to build a question")
			return
		}
		h.logger.Error().Err(err).Msg("question generation failed")
		httperrors.RespondInternalError(w, "Failed to generate question")
		return
	}

	respondJSON(w, http.StatusOK, question)
}

// CheckAnswerRequest is the body for POST /v1/quiz/answer.
type CheckAnswerRequest struct {
	QuestionToken   string `json:"questionToken"`
	SelectedTrackID string `json:"selectedTrackId"`
}

// HandleAnswer handles POST /v1/quiz/answer.
func (h *Handlers) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req CheckAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.QuestionToken == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "questionToken is required", "questionToken")
		return
	}
	selectedID, err := uuid.Parse(req.SelectedTrackID)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "selectedTrackId must be a valid track id", "selectedTrackId")
		return
	}

	result, err := h.svc.CheckAnswer(req.QuestionToken, selectedID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedToken):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMalformedToken, "Question token is malformed")
		case errors.Is(err, ErrExpiredToken):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeExpiredToken, "Question token has expired; request a new question")
		case errors.Is(err, ErrInvalidSelection):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSelection, "Selected track is not among the choices")
		default:
			h.logger.Error().Err(err).Msg("answer check failed")
			httperrors.RespondInternalError(w, "Failed to check answer")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func parseExcludeIDs(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
