package musicquiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes song-quiz play and admin management over REST.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "musicquiz_http").Logger(),
	}
}

// HandleRandom handles GET /v1/music-quizzes/random, optionally scoped with a
// category query parameter. The answer is never included.
func (h *Handlers) HandleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var cat *Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := Category(raw)
		if !c.Valid() {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "unknown category", "category")
			return
		}
		cat = &c
	}

	view, err := h.svc.Random(r.Context(), cat)
	if err != nil {
		h.respondServiceError(w, err, "random music quiz failed")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleGame handles GET /v1/music-quizzes/game/{id}. The answer is never
// included.
func (h *Handlers) HandleGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid quiz id", "id")
		return
	}

	view, err := h.svc.GetForGame(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "music quiz game fetch failed")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type checkAnswerRequest struct {
	QuizID     uuid.UUID `json:"quizId"`
	UserAnswer string    `json:"userAnswer"`
}

// HandleCheckAnswer handles POST /v1/music-quizzes/check-answer.
func (h *Handlers) HandleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	var req checkAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.QuizID == uuid.Nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "quizId is required", "quizId")
		return
	}

	result, err := h.svc.CheckAnswer(r.Context(), req.QuizID, req.UserAnswer)
	if err != nil {
		h.respondServiceError(w, err, "music quiz answer check failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleAdminCollection handles GET and POST /v1/admin/music-quizzes. Listing
// is paged with page and size parameters, or scoped to a single category.
func (h *Handlers) HandleAdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if raw := r.URL.Query().Get("category"); raw != "" {
			cat := Category(raw)
			if !cat.Valid() {
				httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "unknown category", "category")
				return
			}
			quizzes, err := h.svc.ListByCategory(r.Context(), cat)
			if err != nil {
				h.logger.Error().Err(err).Msg("music quiz list failed")
				httperrors.RespondInternalError(w, "Failed to list music quizzes")
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{"items": quizzes})
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		result, err := h.svc.List(r.Context(), page, size)
		if err != nil {
			h.logger.Error().Err(err).Msg("music quiz list failed")
			httperrors.RespondInternalError(w, "Failed to list music quizzes")
			return
		}
		respondJSON(w, http.StatusOK, result)
	case http.MethodPost:
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		if req.MusicURL == "" {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "musicUrl is required", "musicUrl")
			return
		}
		if req.Answer == "" {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "answer is required", "answer")
			return
		}
		if req.Title == "" {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "title is required", "title")
			return
		}
		if !req.Category.Valid() {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "unknown category", "category")
			return
		}

		q, err := h.svc.Create(r.Context(), req)
		if err != nil {
			h.logger.Error().Err(err).Msg("music quiz create failed")
			httperrors.RespondInternalError(w, "Failed to create music quiz")
			return
		}
		respondJSON(w, http.StatusCreated, q)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// HandleAdminByID handles GET, PUT and DELETE /v1/admin/music-quizzes/{id}.
func (h *Handlers) HandleAdminByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid quiz id", "id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		q, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.respondServiceError(w, err, "music quiz get failed")
			return
		}
		respondJSON(w, http.StatusOK, q)
	case http.MethodPut:
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		if req.Category != nil && !req.Category.Valid() {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "unknown category", "category")
			return
		}
		q, err := h.svc.Update(r.Context(), id, req)
		if err != nil {
			h.respondServiceError(w, err, "music quiz update failed")
			return
		}
		respondJSON(w, http.StatusOK, q)
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.respondServiceError(w, err, "music quiz delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, ErrNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Music quiz not found")
		return
	}
	h.logger.Error().Err(err).Msg(logMsg)
	httperrors.RespondInternalError(w, "Failed to process music quiz request")
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
