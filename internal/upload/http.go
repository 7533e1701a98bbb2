package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

// Handlers exposes admin image uploads over REST.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "upload_http").Logger(),
	}
}

// HandleUpload handles POST /v1/admin/images. The multipart form carries the
// image under "file" and an optional target "folder".
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		httperrors.RespondError(w, http.StatusRequestEntityTooLarge, httperrors.ErrCodeFileTooLarge, "Upload exceeds the size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "file is required", "file")
		return
	}
	defer file.Close()

	if header.Size > MaxFileSize {
		httperrors.RespondError(w, http.StatusRequestEntityTooLarge, httperrors.ErrCodeFileTooLarge, "Upload exceeds the size limit")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		h.logger.Error().Err(err).Msg("reading upload failed")
		httperrors.RespondInternalError(w, "Failed to read upload")
		return
	}

	result, err := h.svc.Store(r.Context(), r.FormValue("folder"), data)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			httperrors.RespondError(w, http.StatusRequestEntityTooLarge, httperrors.ErrCodeFileTooLarge, "Upload exceeds the size limit")
		case errors.Is(err, ErrUnsupportedFile):
			httperrors.RespondValidationError(w, httperrors.ErrCodeUnsupportedFile, "Only JPEG, PNG, GIF and WebP images are accepted", "file")
		default:
			h.logger.Error().Err(err).Msg("image upload failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUploadFailed, "Failed to store image")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(result)
}
