package handler

import (
	"log/slog"
	"net/http"

	"promptkit/internal/httputil"
	"promptkit/internal/sorting"
)

// SortOptionsHandler exposes the explore sort catalog
type SortOptionsHandler struct {
	registry *sorting.Registry
	logger   *slog.Logger
}

// NewSortOptionsHandler creates a new sort options handler
func NewSortOptionsHandler(registry *sorting.Registry, logger *slog.Logger) *SortOptionsHandler {
	return &SortOptionsHandler{
		registry: registry,
		logger:   logger,
	}
}

// SortOptionsResponse lists the sort keys in display order
type SortOptionsResponse struct {
	Default string           `json:"default"`
	Options []sorting.Option `json:"options"`
}

// GetSortOptions
// GET /api/prompts/sort-options
func (h *SortOptionsHandler) GetSortOptions(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, SortOptionsResponse{
		Default: h.registry.Default(),
		Options: h.registry.Options(),
	})
}
