package repositories

import (
	"context"

	"promptkit/internal/domain/models"
)

// PromptRepository defines data access operations for prompts
type PromptRepository interface {
	// Create creates a prompt
	Create(ctx context.Context, prompt *models.Prompt) error

	// GetByID retrieves a prompt with its like count, categories and author
	GetByID(ctx context.Context, id string) (*models.Prompt, error)

	// Update updates the editable fields of a prompt owned by prompt.UserID
	Update(ctx context.Context, prompt *models.Prompt) error

	// Delete deletes a prompt owned by userID
	Delete(ctx context.Context, id, userID string) error

	// List returns one page of the explore listing and the total match count
	List(ctx context.Context, query *models.PromptQuery) ([]models.Prompt, int, error)

	// ListByFolder lists the prompts a user filed in a folder
	ListByFolder(ctx context.Context, folderID, userID string) ([]models.Prompt, error)

	// ListCreatedForExtension lists the user's own prompts, newest first
	ListCreatedForExtension(ctx context.Context, userID string, limit int) ([]models.ExtensionPrompt, error)

	// ListLikedForExtension lists prompts the user liked, newest like first
	ListLikedForExtension(ctx context.Context, userID string, limit int) ([]models.ExtensionPrompt, error)

	// SetCategories replaces the categories attached to a prompt
	SetCategories(ctx context.Context, promptID string, categoryIDs []string) error

	// IncrementCopyCount bumps copy_count and returns the new value
	IncrementCopyCount(ctx context.Context, id string) (int, error)

	// IncrementViewCount bumps view_count and returns the new value
	IncrementViewCount(ctx context.Context, id string) (int, error)
}
