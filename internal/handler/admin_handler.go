package handler

import (
	"net/http"
	"strings"

	"plantkart/internal/model"
	"plantkart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles admin reconciliation HTTP requests.
type AdminHandler struct {
	service service.ReconciliationService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.ReconciliationService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Validate handles POST /api/admin/orders/{id}/validate requests. The
// validation outcome is always rendered with a 200: inconsistencies are data,
// not transport failures.
func (h *AdminHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "/validate")
	if !ok {
		return
	}

	result := h.service.ValidateParent(r.Context(), orderID)
	writeJSON(w, http.StatusOK, result)
}

// Repair handles POST /api/admin/orders/{id}/repair requests. Like Validate,
// the outcome is rendered with a 200 regardless of success.
func (h *AdminHandler) Repair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "/repair")
	if !ok {
		return
	}

	result := h.service.RepairOrder(r.Context(), orderID)
	writeJSON(w, http.StatusOK, result)
}

// orderIDFromPath extracts the order ID between the admin prefix and the
// trailing action segment.
func (h *AdminHandler) orderIDFromPath(w http.ResponseWriter, path, action string) (uuid.UUID, bool) {
	const prefix = "/api/admin/orders/"

	path = strings.TrimSuffix(path, action)
	if len(path) <= len(prefix) {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "order ID is required", h.logger)
		return uuid.Nil, false
	}
	idStr := path[len(prefix):]

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}
