package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// ExtensionService backs the companion client endpoints
type ExtensionService interface {
	// ValidateToken verifies a bearer token
	ValidateToken(ctx context.Context, token string) *models.TokenValidation

	// FilterOptions returns the user's folders plus the categories of
	// prompts they created or liked, deduplicated and sorted by name
	FilterOptions(ctx context.Context, userID string) (*models.FilterOptions, error)

	CreatedPrompts(ctx context.Context, userID string) (*models.ExtensionPromptList, error)
	LikedPrompts(ctx context.Context, userID string) (*models.ExtensionPromptList, error)
}
