package handler

import (
	"net/http"

	"deccan-store/internal/model"
	"deccan-store/internal/storage"

	"github.com/rs/zerolog"
)

// maxUploadSize caps product image uploads at 10 MB.
const maxUploadSize = 10 << 20

// UploadHandler handles product image uploads.
type UploadHandler struct {
	uploader storage.Uploader
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler. The uploader may be nil
// when object storage is not configured; uploads then return 503.
func NewUploadHandler(uploader storage.Uploader, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/uploads multipart requests with an "image" part
// and returns the public URL of the stored object.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeDomainError(w, model.ErrUploadUnavailable, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file", h.logger)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("image upload failed")
		writeError(w, http.StatusInternalServerError, "failed to upload image", h.logger)
		return
	}

	h.logger.Info().Str("filename", header.Filename).Str("url", url).Msg("image uploaded")
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
