package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yoonseo-dev/tinytunes/internal/user"
	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes category browsing and admin management over REST.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "category_http").Logger(),
	}
}

// HandleList handles GET /v1/categories. The list is narrowed to the calling
// user's allowed categories when that restriction is set.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	categories, err := h.svc.ListVisible(r.Context(), user.FromContext(r.Context()))
	if err != nil {
		h.logger.Error().Err(err).Msg("category list failed")
		httperrors.RespondInternalError(w, "Failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// HandleAdminCollection handles GET and POST /v1/admin/categories.
func (h *Handlers) HandleAdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := h.svc.ListAll(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("admin category list failed")
			httperrors.RespondInternalError(w, "Failed to list categories")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
	case http.MethodPost:
		h.create(w, r)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// HandleAdminByID handles GET, PUT and DELETE /v1/admin/categories/{id}.
func (h *Handlers) HandleAdminByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid category id", "id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		c, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.respondServiceError(w, err, "category get failed")
			return
		}
		respondJSON(w, http.StatusOK, c)
	case http.MethodPut:
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		c, err := h.svc.Update(r.Context(), id, req)
		if err != nil {
			h.respondServiceError(w, err, "category update failed")
			return
		}
		respondJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.respondServiceError(w, err, "category delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// HandleAdminSetImage handles PUT /v1/admin/categories/{id}/image.
func (h *Handlers) HandleAdminSetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid category id", "id")
		return
	}

	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.ImageURL == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "imageUrl is required", "imageUrl")
		return
	}

	c, err := h.svc.SetImage(r.Context(), id, req.ImageURL)
	if err != nil {
		h.respondServiceError(w, err, "category image update failed")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "name is required", "name")
		return
	}

	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("category create failed")
		httperrors.RespondInternalError(w, "Failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, ErrNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Category not found")
		return
	}
	h.logger.Error().Err(err).Msg(logMsg)
	httperrors.RespondInternalError(w, "Failed to process category request")
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
