package auth

import (
	"context"
	"errors"
	"fmt"

	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
type OwnerBasedAuthorizer struct {
	promptRepo repositories.PromptRepository
	folderRepo repositories.FolderRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	promptRepo repositories.PromptRepository,
	folderRepo repositories.FolderRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		promptRepo: promptRepo,
		folderRepo: folderRepo,
	}
}

// CanViewPrompt hides private prompts of other users behind ErrNotFound
func (a *OwnerBasedAuthorizer) CanViewPrompt(ctx context.Context, userID string, prompt *models.Prompt) error {
	if prompt.VisibleTo(userID) {
		return nil
	}
	return domain.NotFound("prompt", prompt.ID)
}

// CanModifyPrompt loads the prompt and checks ownership
func (a *OwnerBasedAuthorizer) CanModifyPrompt(ctx context.Context, userID, promptID string) (*models.Prompt, error) {
	prompt, err := a.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	if prompt.UserID != userID {
		return nil, fmt.Errorf("access denied to prompt %s: %w", promptID, domain.ErrForbidden)
	}
	return prompt, nil
}

// CanUseFolder checks that the folder belongs to the user
func (a *OwnerBasedAuthorizer) CanUseFolder(ctx context.Context, userID, folderID string) error {
	if _, err := a.folderRepo.GetByID(ctx, folderID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("folder %s does not exist", folderID)
		}
		return fmt.Errorf("check folder access: %w", err)
	}
	return nil
}
