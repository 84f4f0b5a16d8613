package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// PromptService handles prompt business logic.
// viewerID is the authenticated caller, empty for anonymous requests.
type PromptService interface {
	CreatePrompt(ctx context.Context, req *CreatePromptRequest) (*models.Prompt, error)

	// GetPrompt returns the prompt when it is public or owned by viewerID.
	// Other prompts are reported as not found.
	GetPrompt(ctx context.Context, id, viewerID string) (*models.Prompt, error)

	// UpdatePrompt updates a prompt owned by req.UserID (403 otherwise)
	UpdatePrompt(ctx context.Context, id string, req *UpdatePromptRequest) (*models.Prompt, error)

	DeletePrompt(ctx context.Context, id, userID string) error

	// ListPrompts returns one page of the explore listing
	ListPrompts(ctx context.Context, query *models.PromptQuery) (*models.PromptPage, error)

	// ToggleLike flips the caller's like and reports the new state
	ToggleLike(ctx context.Context, id, userID string) (*models.LikeStatus, error)

	// LikeStatus reports whether viewerID liked the prompt and its like total
	LikeStatus(ctx context.Context, id, viewerID string) (*models.LikeStatus, error)

	RecordView(ctx context.Context, id, viewerID string) (int, error)
	RecordCopy(ctx context.Context, id, viewerID string) (int, error)
}

// CreatePromptRequest represents a prompt creation request
type CreatePromptRequest struct {
	UserID      string   `json:"-"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description *string  `json:"description,omitempty"`
	IsPublic    bool     `json:"isPublic"`
	FolderID    *string  `json:"folderId,omitempty"`
	CategoryIDs []string `json:"categoryIds"`
}

// UpdatePromptRequest represents a partial prompt update
type UpdatePromptRequest struct {
	UserID      string
	Title       *string
	Content     *string
	Description OptionalString
	IsPublic    *bool
	FolderID    OptionalString
	CategoryIDs *[]string
}
