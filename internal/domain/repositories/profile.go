package repositories

import (
	"context"

	"promptkit/internal/domain/models"
)

// ProfileRepository defines data access operations for user profiles
type ProfileRepository interface {
	// GetByID retrieves the profile of a user
	GetByID(ctx context.Context, userID string) (*models.Profile, error)

	// Upsert creates the profile or updates it in place
	Upsert(ctx context.Context, profile *models.Profile) error
}
