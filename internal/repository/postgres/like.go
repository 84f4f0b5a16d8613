package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptkit/internal/domain"
	"promptkit/internal/domain/repositories"
)

// PostgresLikeRepository implements the LikeRepository interface
type PostgresLikeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(config *RepositoryConfig) repositories.LikeRepository {
	return &PostgresLikeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresLikeRepository) Exists(ctx context.Context, promptID, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE prompt_id = $1 AND user_id = $2)
	`, r.tables.PromptLikes)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, promptID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

func (r *PostgresLikeRepository) Add(ctx context.Context, promptID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (prompt_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (prompt_id, user_id) DO NOTHING
	`, r.tables.PromptLikes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, promptID, userID); err != nil {
		if IsPgForeignKeyError(err) {
			return domain.NotFound("prompt", promptID)
		}
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (r *PostgresLikeRepository) Remove(ctx context.Context, promptID, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE prompt_id = $1 AND user_id = $2`, r.tables.PromptLikes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, promptID, userID); err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	return nil
}

func (r *PostgresLikeRepository) Count(ctx context.Context, promptID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE prompt_id = $1`, r.tables.PromptLikes)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, promptID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *PostgresLikeRepository) ListUserIDs(ctx context.Context, promptID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE prompt_id = $1`, r.tables.PromptLikes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, promptID)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan likers: %w", err)
	}
	return userIDs, nil
}
