package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// ResourceAuthorizer checks if a user can access resources.
// The current implementation is ownership based.
type ResourceAuthorizer interface {
	// CanViewPrompt allows public prompts and the owner's private prompts.
	// A denied private prompt is reported as not found.
	CanViewPrompt(ctx context.Context, userID string, prompt *models.Prompt) error

	// CanModifyPrompt checks that userID owns the prompt (ErrForbidden otherwise)
	CanModifyPrompt(ctx context.Context, userID, promptID string) (*models.Prompt, error)

	// CanUseFolder checks that userID owns the folder
	CanUseFolder(ctx context.Context, userID, folderID string) error
}
