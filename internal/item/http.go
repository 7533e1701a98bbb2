package item

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yoonseo-dev/tinytunes/internal/category"
	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// CategoryDirectory resolves categories for item creation. Implemented by the
// category service.
type CategoryDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (category.Category, error)
	FindOrCreateByName(ctx context.Context, name string, imageURL *string) (category.Category, error)
}

// Handlers exposes item browsing and admin management over REST.
type Handlers struct {
	svc        *Service
	categories CategoryDirectory
	logger     zerolog.Logger
}

func NewHandlers(svc *Service, categories CategoryDirectory, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:        svc,
		categories: categories,
		logger:     logger.With().Str("component", "item_http").Logger(),
	}
}

// HandleRandom handles GET /v1/items/random, optionally scoped with a
// categoryId query parameter.
func (h *Handlers) HandleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid category id", "categoryId")
			return
		}
		categoryID = &id
	}

	it, err := h.svc.Random(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, err, "random item failed")
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// HandleListByCategory handles GET /v1/categories/{id}/items.
func (h *Handlers) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	categoryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid category id", "id")
		return
	}

	items, err := h.svc.ListByCategory(r.Context(), categoryID)
	if err != nil {
		h.logger.Error().Err(err).Msg("item list failed")
		httperrors.RespondInternalError(w, "Failed to list items")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

// HandleSearch handles GET /v1/items/search?name=.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "name is required", "name")
		return
	}

	it, err := h.svc.GetByName(r.Context(), name)
	if err != nil {
		h.respondServiceError(w, err, "item search failed")
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// HandleAdminCreate handles POST /v1/admin/items.
func (h *Handlers) HandleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "name is required", "name")
		return
	}
	if req.CategoryID == uuid.Nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "categoryId is required", "categoryId")
		return
	}
	if _, err := h.categories.Get(r.Context(), req.CategoryID); err != nil {
		h.respondServiceError(w, err, "item create category lookup failed")
		return
	}

	it, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("item create failed")
		httperrors.RespondInternalError(w, "Failed to create item")
		return
	}
	respondJSON(w, http.StatusCreated, it)
}

// HandleAdminBulkCreate handles POST /v1/admin/categories/{id}/items.
func (h *Handlers) HandleAdminBulkCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	categoryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid category id", "id")
		return
	}

	var req BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if !h.validPayloads(w, req.Items) {
		return
	}

	cat, err := h.categories.Get(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, err, "item bulk create category lookup failed")
		return
	}

	items, err := h.svc.BulkCreate(r.Context(), cat.ID, req.Items)
	if err != nil {
		h.logger.Error().Err(err).Msg("item bulk create failed")
		httperrors.RespondInternalError(w, "Failed to create items")
		return
	}
	respondJSON(w, http.StatusCreated, BulkCreateResponse{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		CreatedCount: len(items),
		Items:        items,
	})
}

// HandleAdminBulkCreateByName handles POST /v1/admin/items/bulk. The category
// is resolved by name, created on the fly when missing.
func (h *Handlers) HandleAdminBulkCreateByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req BulkCreateByNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.CategoryName == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "categoryName is required", "categoryName")
		return
	}
	if !h.validPayloads(w, req.Items) {
		return
	}

	cat, err := h.categories.FindOrCreateByName(r.Context(), req.CategoryName, req.CategoryImageURL)
	if err != nil {
		h.logger.Error().Err(err).Msg("item bulk create category resolution failed")
		httperrors.RespondInternalError(w, "Failed to resolve category")
		return
	}

	items, err := h.svc.BulkCreate(r.Context(), cat.ID, req.Items)
	if err != nil {
		h.logger.Error().Err(err).Msg("item bulk create failed")
		httperrors.RespondInternalError(w, "Failed to create items")
		return
	}
	respondJSON(w, http.StatusCreated, BulkCreateResponse{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		CreatedCount: len(items),
		Items:        items,
	})
}

func (h *Handlers) validPayloads(w http.ResponseWriter, payloads []CreatePayload) bool {
	if len(payloads) == 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "items must not be empty", "items")
		return false
	}
	for _, p := range payloads {
		if p.Name == "" {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "every item needs a name", "items")
			return false
		}
	}
	return true
}

// HandleAdminByID handles GET, PUT and DELETE /v1/admin/items/{id}.
func (h *Handlers) HandleAdminByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "invalid item id", "id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		it, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.respondServiceError(w, err, "item get failed")
			return
		}
		respondJSON(w, http.StatusOK, it)
	case http.MethodPut:
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		it, err := h.svc.Update(r.Context(), id, req)
		if err != nil {
			h.respondServiceError(w, err, "item update failed")
			return
		}
		respondJSON(w, http.StatusOK, it)
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.respondServiceError(w, err, "item delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Item not found")
	case errors.Is(err, category.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Category not found")
	default:
		h.logger.Error().Err(err).Msg(logMsg)
		httperrors.RespondInternalError(w, "Failed to process item request")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
