package track

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes admin track management over REST.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "track_http").Logger(),
	}
}

// HandleCollection handles GET and POST /v1/admin/tracks.
func (h *Handlers) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// HandleUpdate handles PUT /v1/admin/tracks/{id}.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid track id", "id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	t, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Track not found")
		case errors.Is(err, ErrDuplicateVideo):
			httperrors.RespondConflict(w, httperrors.ErrCodeAlreadyExists, "Video already registered")
		default:
			h.logger.Error().Err(err).Msg("track update failed")
			httperrors.RespondInternalError(w, "Failed to update track")
		}
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := Status(raw)
		if s != StatusActive && s != StatusInactive {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "status must be ACTIVE or INACTIVE", "status")
			return
		}
		status = &s
	}

	tracks, err := h.svc.List(r.Context(), status, r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error().Err(err).Msg("track list failed")
		httperrors.RespondInternalError(w, "Failed to list tracks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.VideoID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "videoId is required", "videoId")
		return
	}
	if req.Title == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "title is required", "title")
		return
	}
	if req.StartSeconds < 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "startSeconds must be non-negative", "startSeconds")
		return
	}

	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateVideo) {
			httperrors.RespondConflict(w, httperrors.ErrCodeAlreadyExists, "Video already registered")
			return
		}
		h.logger.Error().Err(err).Msg("track create failed")
		httperrors.RespondInternalError(w, "Failed to create track")
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
