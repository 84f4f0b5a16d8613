package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"promptkit/internal/cache"
	"promptkit/internal/config"
	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	"promptkit/internal/domain/services"
)

type promptService struct {
	promptRepo repositories.PromptRepository
	likeRepo   repositories.LikeRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	cache      cache.Cache
	sanitizer  *TextSanitizer
	logger     *slog.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(
	promptRepo repositories.PromptRepository,
	likeRepo repositories.LikeRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	c cache.Cache,
	sanitizer *TextSanitizer,
	logger *slog.Logger,
) services.PromptService {
	return &promptService{
		promptRepo: promptRepo,
		likeRepo:   likeRepo,
		txManager:  txManager,
		authorizer: authorizer,
		cache:      c,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

// CreatePrompt creates a prompt and attaches its categories
func (s *promptService) CreatePrompt(ctx context.Context, req *services.CreatePromptRequest) (*models.Prompt, error) {
	req.Title = s.sanitizer.Clean(req.Title)
	req.Description = s.sanitizer.CleanPtr(req.Description)
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	req.CategoryIDs = dedupe(req.CategoryIDs)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if err := s.authorizer.CanUseFolder(ctx, req.UserID, *req.FolderID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	prompt := &models.Prompt{
		UserID:      req.UserID,
		FolderID:    req.FolderID,
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CategoryIDs: req.CategoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.promptRepo.Create(ctx, prompt); err != nil {
			return err
		}
		return s.promptRepo.SetCategories(ctx, prompt.ID, prompt.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.logger.Info("prompt created",
		"id", prompt.ID,
		"user_id", prompt.UserID,
		"is_public", prompt.IsPublic,
		"categories", len(prompt.CategoryIDs),
	)

	return prompt, nil
}

// GetPrompt retrieves a prompt visible to viewerID
func (s *promptService) GetPrompt(ctx context.Context, id, viewerID string) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanViewPrompt(ctx, viewerID, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// UpdatePrompt applies a partial update
func (s *promptService) UpdatePrompt(ctx context.Context, id string, req *services.UpdatePromptRequest) (*models.Prompt, error) {
	if req.Title != nil {
		cleaned := s.sanitizer.Clean(*req.Title)
		req.Title = &cleaned
	}
	if req.Description.Present {
		req.Description.Value = s.sanitizer.CleanPtr(req.Description.Value)
	}
	if req.CategoryIDs != nil {
		ids := dedupe(*req.CategoryIDs)
		req.CategoryIDs = &ids
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	prompt, err := s.authorizer.CanModifyPrompt(ctx, req.UserID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		prompt.Title = *req.Title
	}
	if req.Content != nil {
		prompt.Content = *req.Content
	}
	if req.Description.Present {
		prompt.Description = req.Description.Value
	}
	if req.IsPublic != nil {
		prompt.IsPublic = *req.IsPublic
	}
	if req.FolderID.Present {
		if req.FolderID.Value == nil || *req.FolderID.Value == "" {
			prompt.FolderID = nil
		} else {
			if err := s.authorizer.CanUseFolder(ctx, req.UserID, *req.FolderID.Value); err != nil {
				return nil, err
			}
			folderID := *req.FolderID.Value
			prompt.FolderID = &folderID
		}
	}
	if req.CategoryIDs != nil {
		prompt.CategoryIDs = *req.CategoryIDs
	}
	prompt.UpdatedAt = time.Now()

	// likers see this prompt's categories among their chips
	likers := s.likerIDs(ctx, prompt.ID)

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.promptRepo.Update(ctx, prompt); err != nil {
			return err
		}
		if req.CategoryIDs != nil {
			return s.promptRepo.SetCategories(ctx, prompt.ID, prompt.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, append(likers, req.UserID)...)
	s.logger.Info("prompt updated", "id", prompt.ID, "user_id", req.UserID)

	return prompt, nil
}

// DeletePrompt deletes a prompt owned by userID
func (s *promptService) DeletePrompt(ctx context.Context, id, userID string) error {
	if _, err := s.authorizer.CanModifyPrompt(ctx, userID, id); err != nil {
		return err
	}
	// read before the delete cascades the likes away
	likers := s.likerIDs(ctx, id)
	if err := s.promptRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.invalidate(ctx, append(likers, userID)...)
	s.logger.Info("prompt deleted", "id", id, "user_id", userID)
	return nil
}

// ListPrompts returns one page of the explore listing with content previews
func (s *promptService) ListPrompts(ctx context.Context, query *models.PromptQuery) (*models.PromptPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = config.DefaultPageSize
	}
	if query.PageSize > config.MaxPageSize {
		query.PageSize = config.MaxPageSize
	}

	if err := validation.ValidateStruct(query,
		validation.Field(&query.CategoryID, is.UUID),
		validation.Field(&query.UserID, is.UUID),
		validation.Field(&query.Search, validation.RuneLength(0, config.MaxPromptTitleLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	prompts, total, err := s.promptRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range prompts {
		prompts[i].Preview(config.PromptPreviewLength)
	}

	return &models.PromptPage{
		Prompts:     prompts,
		TotalCount:  total,
		TotalPages:  (total + query.PageSize - 1) / query.PageSize,
		CurrentPage: query.Page,
	}, nil
}

// ToggleLike flips the like of userID on a visible prompt
func (s *promptService) ToggleLike(ctx context.Context, id, userID string) (*models.LikeStatus, error) {
	if _, err := s.GetPrompt(ctx, id, userID); err != nil {
		return nil, err
	}

	status := &models.LikeStatus{}
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		liked, err := s.likeRepo.Exists(ctx, id, userID)
		if err != nil {
			return err
		}

		if liked {
			err = s.likeRepo.Remove(ctx, id, userID)
		} else {
			err = s.likeRepo.Add(ctx, id, userID)
		}
		if err != nil {
			return err
		}
		status.Liked = !liked

		status.LikeCount, err = s.likeRepo.Count(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info("prompt like toggled", "id", id, "user_id", userID, "liked", status.Liked)
	return status, nil
}

// LikeStatus reports the like state; anonymous viewers are never "liked"
func (s *promptService) LikeStatus(ctx context.Context, id, viewerID string) (*models.LikeStatus, error) {
	prompt, err := s.GetPrompt(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	status := &models.LikeStatus{LikeCount: prompt.LikeCount}
	if viewerID != "" {
		status.Liked, err = s.likeRepo.Exists(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
	}
	return status, nil
}

// RecordView increments the view counter of a visible prompt
func (s *promptService) RecordView(ctx context.Context, id, viewerID string) (int, error) {
	if _, err := s.GetPrompt(ctx, id, viewerID); err != nil {
		return 0, err
	}
	return s.promptRepo.IncrementViewCount(ctx, id)
}

// RecordCopy increments the copy counter of a visible prompt
func (s *promptService) RecordCopy(ctx context.Context, id, viewerID string) (int, error) {
	if _, err := s.GetPrompt(ctx, id, viewerID); err != nil {
		return 0, err
	}
	count, err := s.promptRepo.IncrementCopyCount(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("prompt copied", "id", id, "copy_count", count)
	return count, nil
}

// invalidate drops the cached filter chips of userIDs after a change to
// their prompts or likes
func (s *promptService) invalidate(ctx context.Context, userIDs ...string) {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = cache.FilterOptionsKey(id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate filter options", "user_ids", userIDs, "error", err)
	}
}

// likerIDs lists who liked a prompt. A failed lookup only costs cache
// freshness, so it is logged and yields no ids.
func (s *promptService) likerIDs(ctx context.Context, promptID string) []string {
	ids, err := s.likeRepo.ListUserIDs(ctx, promptID)
	if err != nil {
		s.logger.Warn("failed to list likers", "prompt_id", promptID, "error", err)
		return nil
	}
	return ids
}

func (s *promptService) validateCreateRequest(req *services.CreatePromptRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxPromptTitleLength),
		),
		validation.Field(&req.Content,
			validation.Required,
			validation.RuneLength(1, config.MaxPromptContentLength),
		),
		validation.Field(&req.Description, validation.RuneLength(0, config.MaxDescriptionLength)),
		validation.Field(&req.FolderID, is.UUID),
		validation.Field(&req.CategoryIDs, validation.Each(validation.Required, is.UUID)),
	)
}

func (s *promptService) validateUpdateRequest(req *services.UpdatePromptRequest) error {
	if req.Title == nil && req.Content == nil && !req.Description.Present &&
		req.IsPublic == nil && !req.FolderID.Present && req.CategoryIDs == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.UserID, validation.Required),
	}
	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxPromptTitleLength),
		))
	}
	if req.Content != nil {
		rules = append(rules, validation.Field(&req.Content,
			validation.Required,
			validation.RuneLength(1, config.MaxPromptContentLength),
		))
	}
	if err := validation.ValidateStruct(req, rules...); err != nil {
		return err
	}

	if req.Description.Value != nil {
		if err := validation.Validate(*req.Description.Value, validation.RuneLength(0, config.MaxDescriptionLength)); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}
	if req.FolderID.Value != nil && *req.FolderID.Value != "" {
		if err := validation.Validate(*req.FolderID.Value, is.UUID); err != nil {
			return fmt.Errorf("folderId: %w", err)
		}
	}
	if req.CategoryIDs != nil {
		if err := validation.Validate(*req.CategoryIDs, validation.Each(validation.Required, is.UUID)); err != nil {
			return fmt.Errorf("categoryIds: %w", err)
		}
	}
	return nil
}

// dedupe removes repeated ids, keeping first occurrences in order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
