package handler

import (
	"log/slog"
	"net/http"

	"promptkit/internal/domain/models"
	"promptkit/internal/domain/services"
	"promptkit/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// updateFolderRequest keeps absent and null apart for the PATCH fields
type updateFolderRequest struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
	ParentID    httputil.OptionalString `json:"parent_id"`
}

// ListFolders lists the caller's folders
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.ListFolders(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ParentOptions returns the flattened parent picker
// GET /api/folders/options?editing={id}
func (h *FolderHandler) ParentOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.folderService.ParentOptions(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("editing"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, options)
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 with the existing folder on duplicate name
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func(id string) (*models.Folder, error) {
			return h.folderService.GetFolder(r.Context(), id, userID)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder returns the folder page
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contents, err := h.folderService.GetFolderContents(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, contents)
}

// UpdateFolder renames, describes or moves a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body updateFolderRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := &services.UpdateFolderRequest{
		UserID:      httputil.GetUserID(r),
		Name:        body.Name,
		Description: services.OptionalString{Present: body.Description.Present, Value: body.Description.Value},
		ParentID:    services.OptionalString{Present: body.ParentID.Present, Value: body.ParentID.Value},
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), id, req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder; children and prompts are detached
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
