package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"deccan-store/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// statusForCode maps stable domain error codes to HTTP statuses.
var statusForCode = map[string]int{
	model.ErrCodeInvalidJSON:       http.StatusBadRequest,
	model.ErrCodeValidation:        http.StatusBadRequest,
	model.ErrCodeInvalidStatus:     http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:   http.StatusBadRequest,
	model.ErrCodePaymentFailed:     http.StatusBadRequest,
	model.ErrCodeProductNotFound:   http.StatusNotFound,
	model.ErrCodeCategoryNotFound:  http.StatusNotFound,
	model.ErrCodeOrderNotFound:     http.StatusNotFound,
	model.ErrCodeCategoryExists:    http.StatusConflict,
	model.ErrCodeUploadUnavailable: http.StatusServiceUnavailable,
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// carry their own message; anything else becomes a generic 500 so upstream
// failure details stay server-side.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusForCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
}
