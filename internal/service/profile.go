package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"promptkit/internal/config"
	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	"promptkit/internal/domain/services"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type profileService struct {
	profileRepo repositories.ProfileRepository
	sanitizer   *TextSanitizer
	logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	sanitizer *TextSanitizer,
	logger *slog.Logger,
) services.ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		sanitizer:   sanitizer,
		logger:      logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpsertProfile creates or replaces the caller's profile
func (s *profileService) UpsertProfile(ctx context.Context, req *services.UpsertProfileRequest) (*models.Profile, error) {
	req.Username = s.sanitizer.Clean(req.Username)
	req.FullName = s.sanitizer.CleanPtr(req.FullName)
	req.Bio = s.sanitizer.CleanPtr(req.Bio)

	err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Username,
			validation.Required,
			validation.RuneLength(3, config.MaxUsernameLength),
			validation.Match(usernamePattern).Error("may only contain letters, digits, '.', '_' and '-'"),
		),
		validation.Field(&req.FullName, validation.RuneLength(0, config.MaxUsernameLength*2)),
		validation.Field(&req.AvatarURL, is.URL),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.Bio, validation.RuneLength(0, config.MaxBioLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile := &models.Profile{
		ID:        req.UserID,
		Username:  req.Username,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Website:   req.Website,
		Bio:       req.Bio,
		UpdatedAt: time.Now(),
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile saved", "user_id", profile.ID, "username", profile.Username)
	return profile, nil
}
