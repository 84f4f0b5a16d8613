package handler

import (
	"log/slog"
	"net/http"

	"promptkit/internal/domain/models"
	"promptkit/internal/domain/services"
	"promptkit/internal/httputil"
)

// PromptHandler handles prompt HTTP requests
type PromptHandler struct {
	promptService services.PromptService
	logger        *slog.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(promptService services.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger,
	}
}

type updatePromptRequest struct {
	Title       *string                 `json:"title"`
	Content     *string                 `json:"content"`
	Description httputil.OptionalString `json:"description"`
	IsPublic    *bool                   `json:"isPublic"`
	FolderID    httputil.OptionalString `json:"folderId"`
	CategoryIDs *[]string               `json:"categoryIds"`
}

type likeResponse struct {
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
	Message   string `json:"message"`
}

// ListPrompts serves the explore listing
// GET /api/prompts/fetch?categoryId=&search=&sort=&page=&pageSize=&userId=&isPublic=
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &models.PromptQuery{
		CategoryID: q.Get("categoryId"),
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
		Page:       httputil.QueryInt(r, "page", 1),
		PageSize:   httputil.QueryInt(r, "pageSize", 0),
		UserID:     q.Get("userId"),
		IsPublic:   httputil.QueryBool(r, "isPublic"),
		ViewerID:   httputil.GetUserID(r),
	}

	page, err := h.promptService.ListPrompts(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// CreatePrompt creates a prompt
// POST /api/prompts
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = httputil.GetUserID(r)

	prompt, err := h.promptService.CreatePrompt(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, prompt)
}

// GetPrompt returns a public or owned prompt
// GET /api/prompts/{id}
func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPrompt(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// UpdatePrompt applies a partial update
// PATCH /api/prompts/{id}
func (h *PromptHandler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body updatePromptRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := &services.UpdatePromptRequest{
		UserID:      httputil.GetUserID(r),
		Title:       body.Title,
		Content:     body.Content,
		Description: services.OptionalString{Present: body.Description.Present, Value: body.Description.Value},
		IsPublic:    body.IsPublic,
		FolderID:    services.OptionalString{Present: body.FolderID.Present, Value: body.FolderID.Value},
		CategoryIDs: body.CategoryIDs,
	}

	prompt, err := h.promptService.UpdatePrompt(r.Context(), id, req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// DeletePrompt deletes an owned prompt
// DELETE /api/prompts/{id}
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.promptService.DeletePrompt(r.Context(), id, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike likes or unlikes a prompt
// POST /api/prompts/{id}/like
func (h *PromptHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.promptService.ToggleLike(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	message := "Prompt unliked successfully"
	if status.Liked {
		message = "Prompt liked successfully"
	}
	httputil.RespondJSON(w, http.StatusOK, likeResponse{
		Liked:     status.Liked,
		LikeCount: status.LikeCount,
		Message:   message,
	})
}

// LikeStatus reports whether the caller liked the prompt
// GET /api/prompts/{id}/liked
func (h *PromptHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.promptService.LikeStatus(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, status)
}

// RecordView bumps the view counter
// POST /api/prompts/{id}/view
func (h *PromptHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	count, err := h.promptService.RecordView(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"view_count": count})
}

// RecordCopy bumps the copy counter
// POST /api/prompts/{id}/copy
func (h *PromptHandler) RecordCopy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	count, err := h.promptService.RecordCopy(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"copy_count": count,
	})
}
