package repositories

import (
	"context"

	"promptkit/internal/domain/models"
)

// CategoryRepository defines data access operations for the global category catalog
type CategoryRepository interface {
	// List returns all categories ordered by name
	List(ctx context.Context) ([]models.Category, error)

	// GetByID retrieves a category
	GetByID(ctx context.Context, id string) (*models.Category, error)

	// Upsert inserts a category or updates the description of the one with the same name
	Upsert(ctx context.Context, category *models.Category) error

	// ListForCreatedPrompts returns the categories attached to prompts userID created
	ListForCreatedPrompts(ctx context.Context, userID string) ([]models.Category, error)

	// ListForLikedPrompts returns the categories attached to prompts userID liked
	ListForLikedPrompts(ctx context.Context, userID string) ([]models.Category, error)
}
