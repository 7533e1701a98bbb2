package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes user registration and admin-side user management.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "user_http").Logger(),
	}
}

// HandleRegister handles POST /v1/users/register. This is a public endpoint;
// it mints the API key the client uses afterwards.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("user registration failed")
		httperrors.RespondInternalError(w, "Failed to register user")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// HandleAdminList handles GET /v1/admin/users.
func (h *Handlers) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("user list failed")
		httperrors.RespondInternalError(w, "Failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

// HandleAdminGet handles GET /v1/admin/users/{id}.
func (h *Handlers) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "user get failed")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// HandleAllowedCategories handles PUT /v1/admin/users/{id}/allowed-categories.
// An empty list removes the restriction.
func (h *Handlers) HandleAllowedCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		CategoryIDs []uuid.UUID `json:"categoryIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	u, err := h.svc.UpdateAllowedCategories(r.Context(), id, req.CategoryIDs)
	if err != nil {
		h.respondServiceError(w, err, "allowed categories update failed")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// HandleDeactivate handles POST /v1/admin/users/{id}/deactivate.
func (h *Handlers) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Deactivate(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "user deactivation failed")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handlers) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid user id", "id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, ErrNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "User not found")
		return
	}
	h.logger.Error().Err(err).Msg(logMsg)
	httperrors.RespondInternalError(w, "Failed to process user request")
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
