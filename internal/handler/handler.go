package handler

import (
	"encoding/json"
	"net/http"

	"plantkart/internal/model"

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

// writeError writes an error response with the given status code, error code
// and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error to an HTTP status and writes it.
func writeDomainError(w http.ResponseWriter, err *model.DomainError, logger zerolog.Logger) {
	status := http.StatusInternalServerError

	switch err.Code {
	case model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodeNotParentOrder,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidStatus,
		model.ErrCodeEmptyOrder,
		model.ErrCodeInvalidPincode:
		status = http.StatusBadRequest
	case model.ErrCodeUnserviceablePincode:
		status = http.StatusUnprocessableEntity
	}

	writeError(w, status, err.Code, err.Message, logger)
}
