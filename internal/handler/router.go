package handler

import (
	"log/slog"
	"net/http"

	"promptkit/internal/auth"
	"promptkit/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Health      *HealthHandler
	Folder      *FolderHandler
	Prompt      *PromptHandler
	SortOptions *SortOptionsHandler
	Category    *CategoryHandler
	Profile     *ProfileHandler
	Extension   *ExtensionHandler
}

// NewRouter registers every route. Health and validate-token sit outside
// AuthMiddleware: the latter reports bad tokens in its own body.
func NewRouter(h *Handlers, verifier auth.JWTVerifier, logger *slog.Logger) http.Handler {
	api := http.NewServeMux()
	requireAuth := middleware.RequireAuth

	// Folder routes
	api.HandleFunc("GET /api/folders", requireAuth(h.Folder.ListFolders))
	api.HandleFunc("GET /api/folders/options", requireAuth(h.Folder.ParentOptions)) // Must come before {id} route
	api.HandleFunc("POST /api/folders", requireAuth(h.Folder.CreateFolder))
	api.HandleFunc("GET /api/folders/{id}", requireAuth(h.Folder.GetFolder))
	api.HandleFunc("PATCH /api/folders/{id}", requireAuth(h.Folder.UpdateFolder))
	api.HandleFunc("DELETE /api/folders/{id}", requireAuth(h.Folder.DeleteFolder))

	// Prompt routes
	api.HandleFunc("GET /api/prompts/fetch", h.Prompt.ListPrompts)
	api.HandleFunc("GET /api/prompts/sort-options", h.SortOptions.GetSortOptions)
	api.HandleFunc("POST /api/prompts", requireAuth(h.Prompt.CreatePrompt))
	api.HandleFunc("GET /api/prompts/{id}", h.Prompt.GetPrompt)
	api.HandleFunc("PATCH /api/prompts/{id}", requireAuth(h.Prompt.UpdatePrompt))
	api.HandleFunc("DELETE /api/prompts/{id}", requireAuth(h.Prompt.DeletePrompt))
	api.HandleFunc("POST /api/prompts/{id}/like", requireAuth(h.Prompt.ToggleLike))
	api.HandleFunc("GET /api/prompts/{id}/liked", h.Prompt.LikeStatus)
	api.HandleFunc("POST /api/prompts/{id}/view", h.Prompt.RecordView)
	api.HandleFunc("POST /api/prompts/{id}/copy", h.Prompt.RecordCopy)

	// Category routes
	api.HandleFunc("GET /api/categories", h.Category.ListCategories)
	api.HandleFunc("GET /api/categories/{id}", h.Category.GetCategory)

	// Profile routes
	api.HandleFunc("GET /api/profile", requireAuth(h.Profile.GetProfile))
	api.HandleFunc("POST /api/profile", requireAuth(h.Profile.UpsertProfile))

	// Extension routes
	api.HandleFunc("GET /api/extension/filter-options", requireAuth(h.Extension.FilterOptions))
	api.HandleFunc("GET /api/extension/prompts/created", requireAuth(h.Extension.CreatedPrompts))
	api.HandleFunc("GET /api/extension/prompts/liked", requireAuth(h.Extension.LikedPrompts))

	// Order: RequestLogger → root (public routes, Auth → Routes)
	var authed http.Handler = api
	authed = middleware.AuthMiddleware(verifier, logger)(authed)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", h.Health.HealthCheck)
	root.HandleFunc("GET /api/extension/validate-token", h.Extension.ValidateToken)
	root.Handle("/", authed)
	return middleware.RequestLogger(logger)(root)
}
