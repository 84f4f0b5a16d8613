package service

import (
	"context"
	"errors"
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
	"promptkit/internal/folders"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	promptRepo repositories.PromptRepository
	txManager  repositories.TransactionManager
	cache      cache.Cache
	sanitizer  *TextSanitizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	promptRepo repositories.PromptRepository,
	txManager repositories.TransactionManager,
	c cache.Cache,
	sanitizer *TextSanitizer,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		promptRepo: promptRepo,
		txManager:  txManager,
		cache:      c,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = s.sanitizer.Clean(req.Name)
	req.Description = s.sanitizer.CleanPtr(req.Description)
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("parent folder %s does not exist", *req.ParentID)
			}
			return nil, err
		}
		s.logger.Debug("parent folder found",
			"parent_id", parent.ID,
			"parent_name", parent.Name,
		)
	}

	now := time.Now()
	folder := &models.Folder{
		UserID:      req.UserID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", req.UserID,
		"parent_id", req.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, id, userID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, userID)
}

// GetFolderContents returns the folder with its subfolders, prompts and parent
func (s *folderService) GetFolderContents(ctx context.Context, id, userID string) (*models.FolderContents, error) {
	folder, err := s.folderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	subfolders, err := s.folderRepo.ListChildren(ctx, &folder.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subfolders: %w", err)
	}

	prompts, err := s.promptRepo.ListByFolder(ctx, folder.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	contents := &models.FolderContents{
		Folder:     folder,
		Subfolders: subfolders,
		Prompts:    prompts,
	}

	if !folder.IsRoot() {
		parent, err := s.folderRepo.GetByID(ctx, *folder.ParentID, userID)
		switch {
		case err == nil:
			contents.Parent = &models.FolderRef{ID: parent.ID, Name: parent.Name}
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("folder parent missing", "folder_id", folder.ID, "parent_id", *folder.ParentID)
		default:
			return nil, err
		}
	}

	return contents, nil
}

// ListFolders lists all folders of a user
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByUser(ctx, userID)
}

// ParentOptions flattens the user's folders for the parent picker
func (s *folderService) ParentOptions(ctx context.Context, userID, editingID string) ([]models.FlattenedFolder, error) {
	all, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, dropped := folders.FlattenReport(all)
	for _, d := range dropped {
		s.logger.Warn("folder left out of parent options",
			"folder_id", d.ID,
			"name", d.Name,
			"parent_id", d.ParentID,
			"reason", string(d.Reason),
		)
	}

	return folders.SelectableParents(entries, folders.NewParentIndex(all), editingID), nil
}

// UpdateFolder updates a folder (rename, describe or move)
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		cleaned := s.sanitizer.Clean(*req.Name)
		req.Name = &cleaned
	}
	if req.Description.Present {
		req.Description.Value = s.sanitizer.CleanPtr(req.Description.Value)
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, id, req.UserID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = *req.Name
		}
		if req.Description.Present {
			folder.Description = req.Description.Value
		}

		if req.ParentID.Present {
			if req.ParentID.Value == nil || *req.ParentID.Value == "" {
				folder.ParentID = nil
				s.logger.Debug("moving folder to root", "folder_id", id)
			} else {
				newParentID := *req.ParentID.Value
				if err := s.validateNoCircularReference(ctx, id, newParentID, req.UserID); err != nil {
					return err
				}
				folder.ParentID = &newParentID
				s.logger.Debug("moving folder to new parent",
					"folder_id", id,
					"new_parent_id", newParentID,
				)
			}
		}

		folder.UpdatedAt = time.Now()
		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder. Child folders move to the root and
// prompts become unfiled. A child whose name is already taken at the root
// blocks the delete with a conflict naming the root folder.
func (s *folderService) DeleteFolder(ctx context.Context, id, userID string) error {
	var folder *models.Folder

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := s.checkDetachedNames(ctx, folder); err != nil {
			return err
		}

		return s.folderRepo.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"user_id", userID,
	)

	return nil
}

// checkDetachedNames rejects a delete whose children would collide with a
// root folder of the same name once detached.
func (s *folderService) checkDetachedNames(ctx context.Context, folder *models.Folder) error {
	children, err := s.folderRepo.ListChildren(ctx, &folder.ID, folder.UserID)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}

	roots, err := s.folderRepo.ListChildren(ctx, nil, folder.UserID)
	if err != nil {
		return err
	}
	rootByName := make(map[string]models.Folder, len(roots))
	for _, r := range roots {
		if r.ID != folder.ID {
			rootByName[r.Name] = r
		}
	}

	for _, child := range children {
		if clash, ok := rootByName[child.Name]; ok {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("subfolder '%s' would clash with an existing root folder", child.Name),
				ResourceType: "folder",
				ResourceID:   clash.ID,
			}
		}
	}
	return nil
}

// invalidate drops the cached filter chips, which list the user's folders
func (s *folderService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, cache.FilterOptionsKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate filter options", "user_id", userID, "error", err)
	}
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Description, validation.RuneLength(0, config.MaxDescriptionLength)),
		validation.Field(&req.ParentID, validation.NilOrNotEmpty, is.UUID),
	)
}

func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	if req.Name == nil && !req.Description.Present && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.UserID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.RuneLength(1, config.MaxFolderNameLength),
			),
		)
	}

	if err := validation.ValidateStruct(req, rules...); err != nil {
		return err
	}

	if req.Description.Value != nil {
		if err := validation.Validate(*req.Description.Value, validation.RuneLength(0, config.MaxDescriptionLength)); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}
	if req.ParentID.Value != nil && *req.ParentID.Value != "" {
		if err := validation.Validate(*req.ParentID.Value, is.UUID); err != nil {
			return fmt.Errorf("parent_id: %w", err)
		}
	}
	return nil
}

// validateNoCircularReference rejects moving folderID under itself or one of
// its descendants, using the same guard as the parent picker.
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID, userID string) error {
	if folderID == newParentID {
		return domain.Invalid("cannot move folder to be its own parent")
	}

	if _, err := s.folderRepo.GetByID(ctx, newParentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("parent folder %s does not exist", newParentID)
		}
		return err
	}

	all, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	if folders.NewParentIndex(all).IsDescendantOrSelf(newParentID, folderID) {
		return domain.Invalid("cannot move folder to be a child of its own descendant")
	}
	return nil
}
