package repositories

import (
	"context"

	"promptkit/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every lookup is scoped to the owning user.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by userID
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Update updates name, description and parent
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder. Child folders and prompts are detached.
	Delete(ctx context.Context, id, userID string) error

	// ListChildren lists immediate child folders (nil parent = roots)
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)

	// ListByUser retrieves all folders of a user (flat list, ordered by name)
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)
}
