package handler

import (
	"log/slog"
	"net/http"

	"promptkit/internal/domain/models"
	"promptkit/internal/domain/services"
	"promptkit/internal/httputil"
)

// ExtensionHandler serves the companion client endpoints
type ExtensionHandler struct {
	extensionService services.ExtensionService
	logger           *slog.Logger
}

// NewExtensionHandler creates a new extension handler
func NewExtensionHandler(extensionService services.ExtensionService, logger *slog.Logger) *ExtensionHandler {
	return &ExtensionHandler{
		extensionService: extensionService,
		logger:           logger,
	}
}

// ValidateToken checks the bearer token itself so that a bad token gets a
// {valid:false} body instead of a bare problem response.
// GET /api/extension/validate-token
func (h *ExtensionHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token, ok := httputil.BearerToken(r)
	if !ok || token == "" {
		httputil.RespondJSON(w, http.StatusUnauthorized, models.TokenValidation{
			Valid: false,
			Error: "invalid authorization header",
		})
		return
	}

	result := h.extensionService.ValidateToken(r.Context(), token)
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}
	httputil.RespondJSON(w, status, result)
}

// FilterOptions lists the tags the caller can filter by
// GET /api/extension/filter-options
func (h *ExtensionHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.extensionService.FilterOptions(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, opts)
}

// CreatedPrompts
// GET /api/extension/prompts/created
func (h *ExtensionHandler) CreatedPrompts(w http.ResponseWriter, r *http.Request) {
	list, err := h.extensionService.CreatedPrompts(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, list)
}

// LikedPrompts
// GET /api/extension/prompts/liked
func (h *ExtensionHandler) LikedPrompts(w http.ResponseWriter, r *http.Request) {
	list, err := h.extensionService.LikedPrompts(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, list)
}
