package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// ProfileService manages the caller's public profile
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, req *UpsertProfileRequest) (*models.Profile, error)
}

// UpsertProfileRequest represents a profile create-or-update request
type UpsertProfileRequest struct {
	UserID    string  `json:"-"`
	Username  string  `json:"username"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Website   *string `json:"website,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}
