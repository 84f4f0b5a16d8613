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
	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	"promptkit/internal/domain/services"
)

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	txManager    repositories.TransactionManager
	cache        cache.Cache
	ttl          time.Duration
	logger       *slog.Logger
}

// NewCategoryService creates a category service that caches the full list for ttl
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	txManager repositories.TransactionManager,
	c cache.Cache,
	ttl time.Duration,
	logger *slog.Logger,
) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		txManager:    txManager,
		cache:        c,
		ttl:          ttl,
		logger:       logger,
	}
}

// ListCategories returns all categories, served from cache when possible
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.cache.Get(ctx, cache.CategoriesKey, &categories)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("category cache read failed", "error", err)
	}

	categories, err = s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CategoriesKey, categories, s.ttl); err != nil {
		s.logger.Warn("category cache write failed", "error", err)
	}
	return categories, nil
}

// GetCategory retrieves a category
func (s *categoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if err := validation.Validate(id, validation.Required, is.UUID); err != nil {
		return nil, fmt.Errorf("%w: category id: %v", domain.ErrValidation, err)
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// SeedCategories upserts the given categories in one transaction
func (s *categoryService) SeedCategories(ctx context.Context, categories []models.Category) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		for i := range categories {
			if err := s.categoryRepo.Upsert(ctx, &categories[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, cache.CategoriesKey); err != nil {
		s.logger.Warn("failed to invalidate categories", "error", err)
	}
	s.logger.Info("categories seeded", "count", len(categories))
	return nil
}
