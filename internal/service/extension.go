package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"promptkit/internal/auth"
	"promptkit/internal/cache"
	"promptkit/internal/config"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	"promptkit/internal/domain/services"
)

type extensionService struct {
	verifier     auth.JWTVerifier
	folderRepo   repositories.FolderRepository
	categoryRepo repositories.CategoryRepository
	promptRepo   repositories.PromptRepository
	cache        cache.Cache
	ttl          time.Duration
	logger       *slog.Logger
}

// NewExtensionService creates the service behind the /api/extension routes
func NewExtensionService(
	verifier auth.JWTVerifier,
	folderRepo repositories.FolderRepository,
	categoryRepo repositories.CategoryRepository,
	promptRepo repositories.PromptRepository,
	c cache.Cache,
	ttl time.Duration,
	logger *slog.Logger,
) services.ExtensionService {
	return &extensionService{
		verifier:     verifier,
		folderRepo:   folderRepo,
		categoryRepo: categoryRepo,
		promptRepo:   promptRepo,
		cache:        c,
		ttl:          ttl,
		logger:       logger,
	}
}

// ValidateToken verifies token against the Supabase JWKS
func (s *extensionService) ValidateToken(ctx context.Context, token string) *models.TokenValidation {
	if token == "" {
		return &models.TokenValidation{Valid: false, Error: "missing token"}
	}

	claims, err := s.verifier.VerifyToken(token)
	if err != nil {
		s.logger.Debug("extension token rejected", "error", err)
		return &models.TokenValidation{Valid: false, Error: "invalid token"}
	}
	return &models.TokenValidation{Valid: true, UserID: claims.GetUserID()}
}

// FilterOptions loads folders and both category sets concurrently and
// merges them into the chip list
func (s *extensionService) FilterOptions(ctx context.Context, userID string) (*models.FilterOptions, error) {
	key := cache.FilterOptionsKey(userID)

	var cached models.FilterOptions
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("filter options cache read failed", "user_id", userID, "error", err)
	}

	var (
		userFolders []models.Folder
		created     []models.Category
		liked       []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userFolders, err = s.folderRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		created, err = s.categoryRepo.ListForCreatedPrompts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		liked, err = s.categoryRepo.ListForLikedPrompts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := BuildFilterOptions(userFolders, created, liked)

	if err := s.cache.Set(ctx, key, opts, s.ttl); err != nil {
		s.logger.Warn("filter options cache write failed", "user_id", userID, "error", err)
	}
	return opts, nil
}

// BuildFilterOptions merges folders and category sets into sorted,
// deduplicated chips
func BuildFilterOptions(userFolders []models.Folder, categorySets ...[]models.Category) *models.FilterOptions {
	opts := &models.FilterOptions{
		Folders:    make([]models.FilterTag, 0, len(userFolders)),
		Categories: []models.FilterTag{},
	}

	for _, f := range userFolders {
		opts.Folders = append(opts.Folders, models.FilterTag{ID: f.ID, Name: f.Name})
	}

	seen := make(map[string]bool)
	for _, set := range categorySets {
		for _, c := range set {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			opts.Categories = append(opts.Categories, models.FilterTag{ID: c.ID, Name: c.Name})
		}
	}

	slices.SortStableFunc(opts.Folders, byTagName)
	slices.SortStableFunc(opts.Categories, byTagName)
	return opts
}

func byTagName(a, b models.FilterTag) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// CreatedPrompts lists the user's prompts for the extension
func (s *extensionService) CreatedPrompts(ctx context.Context, userID string) (*models.ExtensionPromptList, error) {
	prompts, err := s.promptRepo.ListCreatedForExtension(ctx, userID, config.ExtensionPromptLimit)
	if err != nil {
		return nil, err
	}
	return &models.ExtensionPromptList{Prompts: prompts, Count: len(prompts)}, nil
}

// LikedPrompts lists the prompts the user liked
func (s *extensionService) LikedPrompts(ctx context.Context, userID string) (*models.ExtensionPromptList, error) {
	prompts, err := s.promptRepo.ListLikedForExtension(ctx, userID, config.ExtensionPromptLimit)
	if err != nil {
		return nil, err
	}
	return &models.ExtensionPromptList{Prompts: prompts, Count: len(prompts)}, nil
}
