package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
)

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List returns all categories
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Categories)

	return r.queryCategories(ctx, query)
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	var c models.Category
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("category", id)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Upsert inserts or updates a category by name
func (r *PostgresCategoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id, created_at
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", category.Name, err)
	}
	return nil
}

// ListForCreatedPrompts returns categories attached to the user's prompts
func (r *PostgresCategoryRepository) ListForCreatedPrompts(ctx context.Context, userID string) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT c.id, c.name, c.description, c.created_at
		FROM %s c
		JOIN %s pc ON pc.category_id = c.id
		JOIN %s p ON p.id = pc.prompt_id
		WHERE p.user_id = $1
		ORDER BY c.name ASC
	`, r.tables.Categories, r.tables.PromptCategories, r.tables.Prompts)

	return r.queryCategories(ctx, query, userID)
}

// ListForLikedPrompts returns categories attached to prompts the user liked
func (r *PostgresCategoryRepository) ListForLikedPrompts(ctx context.Context, userID string) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT c.id, c.name, c.description, c.created_at
		FROM %s c
		JOIN %s pc ON pc.category_id = c.id
		JOIN %s l ON l.prompt_id = pc.prompt_id
		JOIN %s p ON p.id = l.prompt_id
		WHERE l.user_id = $1 AND (p.is_public OR p.user_id = $1)
		ORDER BY c.name ASC
	`, r.tables.Categories, r.tables.PromptCategories, r.tables.PromptLikes, r.tables.Prompts)

	return r.queryCategories(ctx, query, userID)
}

func (r *PostgresCategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]models.Category, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}
