package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// CategoryService serves the global category catalog
type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)

	// SeedCategories upserts categories by name and drops the cached list
	SeedCategories(ctx context.Context, categories []models.Category) error
}
