package repositories

import "context"

// LikeRepository stores one like per (prompt, user)
type LikeRepository interface {
	Exists(ctx context.Context, promptID, userID string) (bool, error)

	// Add records a like. Adding an existing like is a no-op.
	Add(ctx context.Context, promptID, userID string) error

	// Remove deletes a like. Removing a missing like is a no-op.
	Remove(ctx context.Context, promptID, userID string) error

	Count(ctx context.Context, promptID string) (int, error)

	// ListUserIDs returns the users who liked the prompt
	ListUserIDs(ctx context.Context, promptID string) ([]string, error)
}
