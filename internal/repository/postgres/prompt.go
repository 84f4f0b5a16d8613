package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	"promptkit/internal/sorting"
)

// PostgresPromptRepository implements the PromptRepository interface
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	sorts  *sorting.Registry
}

// NewPromptRepository creates a new prompt repository. sorts resolves the
// explore listing sort keys to ORDER BY clauses.
func NewPromptRepository(config *RepositoryConfig, sorts *sorting.Registry) repositories.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
		sorts:  sorts,
	}
}

// selectPrompt is the projection shared by every prompt read: the row plus
// computed like count, category ids and author summary.
func (r *PostgresPromptRepository) selectPrompt() string {
	return fmt.Sprintf(`
		SELECT p.id, p.user_id, p.folder_id, p.title, p.content, p.description,
			p.is_public, p.copy_count, p.view_count, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM %s l WHERE l.prompt_id = p.id) AS like_count,
			COALESCE((
				SELECT array_agg(pc.category_id::text ORDER BY pc.created_at, pc.category_id)
				FROM %s pc WHERE pc.prompt_id = p.id
			), '{}') AS category_ids,
			pr.id::text, pr.username, pr.avatar_url
		FROM %s p
		LEFT JOIN %s pr ON pr.id = p.user_id`,
		r.tables.PromptLikes, r.tables.PromptCategories, r.tables.Prompts, r.tables.Profiles)
}

// Create creates a prompt
func (r *PostgresPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, title, content, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, copy_count, view_count, created_at, updated_at
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		prompt.UserID,
		prompt.FolderID,
		prompt.Title,
		prompt.Content,
		prompt.Description,
		prompt.IsPublic,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	).Scan(&prompt.ID, &prompt.CopyCount, &prompt.ViewCount, &prompt.CreatedAt, &prompt.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return domain.Invalid("folder does not exist")
		}
		return fmt.Errorf("create prompt: %w", err)
	}

	return nil
}

// GetByID retrieves a prompt by ID
func (r *PostgresPromptRepository) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	query := r.selectPrompt() + ` WHERE p.id = $1`

	executor := GetExecutor(ctx, r.pool)
	prompt, err := scanPrompt(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("prompt", id)
		}
		return nil, fmt.Errorf("get prompt: %w", err)
	}

	return prompt, nil
}

// Update updates a prompt
func (r *PostgresPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, title = $2, content = $3, description = $4, is_public = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		prompt.FolderID,
		prompt.Title,
		prompt.Content,
		prompt.Description,
		prompt.IsPublic,
		prompt.UpdatedAt,
		prompt.ID,
		prompt.UserID,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return domain.Invalid("folder does not exist")
		}
		return fmt.Errorf("update prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NotFound("prompt", prompt.ID)
	}

	return nil
}

// Delete deletes a prompt
func (r *PostgresPromptRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NotFound("prompt", id)
	}

	return nil
}

// List returns one page of prompts matching query
func (r *PostgresPromptRepository) List(ctx context.Context, query *models.PromptQuery) ([]models.Prompt, int, error) {
	where, args := promptFilters(query, r.tables)

	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE %s`, r.tables.Prompts, where)

	executor := GetExecutor(ctx, r.pool)
	var total int
	if err := executor.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prompts: %w", err)
	}

	listSQL := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		r.selectPrompt(), where, r.sorts.OrderBy(query.Sort), len(args)+1, len(args)+2)
	args = append(args, query.PageSize, query.Offset())

	prompts, err := r.queryPrompts(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return prompts, total, nil
}

// promptFilters builds the WHERE clause for a listing query. Values are
// always bound as parameters; only table names are interpolated.
func promptFilters(q *models.PromptQuery, tables *TableNames) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.ViewerID == "" {
		conds = append(conds, "p.is_public")
	} else {
		conds = append(conds, fmt.Sprintf("(p.is_public OR p.user_id = %s)", arg(q.ViewerID)))
	}
	if q.IsPublic != nil {
		conds = append(conds, fmt.Sprintf("p.is_public = %s", arg(*q.IsPublic)))
	}
	if q.UserID != "" {
		conds = append(conds, fmt.Sprintf("p.user_id = %s", arg(q.UserID)))
	}
	if q.CategoryID != "" {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s pc WHERE pc.prompt_id = p.id AND pc.category_id = %s)",
			tables.PromptCategories, arg(q.CategoryID)))
	}
	if q.Search != "" {
		pattern := arg("%" + escapeLike(q.Search) + "%")
		conds = append(conds, fmt.Sprintf(
			"(p.title ILIKE %s OR COALESCE(p.description, '') ILIKE %s)", pattern, pattern))
	}

	return strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE wildcards so search terms match literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListByFolder lists the prompts in a folder
func (r *PostgresPromptRepository) ListByFolder(ctx context.Context, folderID, userID string) ([]models.Prompt, error) {
	query := r.selectPrompt() + ` WHERE p.folder_id = $1 AND p.user_id = $2 ORDER BY p.title ASC, p.id ASC`
	return r.queryPrompts(ctx, query, folderID, userID)
}

// ListCreatedForExtension lists the user's prompts for the extension
func (r *PostgresPromptRepository) ListCreatedForExtension(ctx context.Context, userID string, limit int) ([]models.ExtensionPrompt, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.content, p.created_at, p.is_public, p.folder_id, p.user_id,
			fc.id::text, fc.name
		FROM %s p
		%s
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $2
	`, r.tables.Prompts, r.firstCategoryJoin())

	return r.queryExtensionPrompts(ctx, query, userID, limit)
}

// ListLikedForExtension lists the prompts a user liked. Private prompts of
// other users are skipped.
func (r *PostgresPromptRepository) ListLikedForExtension(ctx context.Context, userID string, limit int) ([]models.ExtensionPrompt, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.content, p.created_at, p.is_public, p.folder_id, p.user_id,
			fc.id::text, fc.name
		FROM %s l
		JOIN %s p ON p.id = l.prompt_id
		%s
		WHERE l.user_id = $1 AND (p.is_public OR p.user_id = $1)
		ORDER BY l.created_at DESC, p.id ASC
		LIMIT $2
	`, r.tables.PromptLikes, r.tables.Prompts, r.firstCategoryJoin())

	return r.queryExtensionPrompts(ctx, query, userID, limit)
}

// firstCategoryJoin attaches the first category (by attach time) as fc
func (r *PostgresPromptRepository) firstCategoryJoin() string {
	return fmt.Sprintf(`
		LEFT JOIN LATERAL (
			SELECT c.id, c.name
			FROM %s pc
			JOIN %s c ON c.id = pc.category_id
			WHERE pc.prompt_id = p.id
			ORDER BY pc.created_at, c.id
			LIMIT 1
		) fc ON TRUE`, r.tables.PromptCategories, r.tables.Categories)
}

// SetCategories replaces the categories of a prompt
func (r *PostgresPromptRepository) SetCategories(ctx context.Context, promptID string, categoryIDs []string) error {
	executor := GetExecutor(ctx, r.pool)

	deleteSQL := fmt.Sprintf(`DELETE FROM %s WHERE prompt_id = $1`, r.tables.PromptCategories)
	if _, err := executor.Exec(ctx, deleteSQL, promptID); err != nil {
		return fmt.Errorf("clear prompt categories: %w", err)
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	// WITH ORDINALITY keeps the caller's order as the attach order.
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s (prompt_id, category_id, created_at)
		SELECT $1, c.id::uuid, NOW() + (c.ord * INTERVAL '1 microsecond')
		FROM unnest($2::text[]) WITH ORDINALITY AS c(id, ord)
		ON CONFLICT DO NOTHING
	`, r.tables.PromptCategories)

	if _, err := executor.Exec(ctx, insertSQL, promptID, categoryIDs); err != nil {
		if IsPgForeignKeyError(err) {
			return domain.Invalid("unknown category")
		}
		return fmt.Errorf("set prompt categories: %w", err)
	}

	return nil
}

// IncrementCopyCount bumps copy_count
func (r *PostgresPromptRepository) IncrementCopyCount(ctx context.Context, id string) (int, error) {
	return r.increment(ctx, id, "copy_count")
}

// IncrementViewCount bumps view_count
func (r *PostgresPromptRepository) IncrementViewCount(ctx context.Context, id string) (int, error) {
	return r.increment(ctx, id, "view_count")
}

// increment updates a counter column atomically. column is never user input.
func (r *PostgresPromptRepository) increment(ctx context.Context, id, column string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1
		WHERE id = $1
		RETURNING %s
	`, r.tables.Prompts, column, column, column)

	executor := GetExecutor(ctx, r.pool)
	var value int
	if err := executor.QueryRow(ctx, query, id).Scan(&value); err != nil {
		if IsPgNoRowsError(err) {
			return 0, domain.NotFound("prompt", id)
		}
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}
	return value, nil
}

func (r *PostgresPromptRepository) queryPrompts(ctx context.Context, query string, args ...interface{}) ([]models.Prompt, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, *prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}

	return prompts, nil
}

func (r *PostgresPromptRepository) queryExtensionPrompts(ctx context.Context, query string, args ...interface{}) ([]models.ExtensionPrompt, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extension prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.ExtensionPrompt{}
	for rows.Next() {
		var p models.ExtensionPrompt
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Content,
			&p.CreatedAt,
			&p.IsPublic,
			&p.FolderID,
			&p.UserID,
			&p.CategoryID,
			&p.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan extension prompt: %w", err)
		}
		prompts = append(prompts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extension prompts: %w", err)
	}

	return prompts, nil
}

func scanPrompt(row pgx.Row) (*models.Prompt, error) {
	var p models.Prompt
	var profileID, username, avatarURL *string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FolderID,
		&p.Title,
		&p.Content,
		&p.Description,
		&p.IsPublic,
		&p.CopyCount,
		&p.ViewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.LikeCount,
		&p.CategoryIDs,
		&profileID,
		&username,
		&avatarURL,
	)
	if err != nil {
		return nil, err
	}

	if profileID != nil {
		p.Profile = &models.ProfileSummary{ID: *profileID, Username: username, AvatarURL: avatarURL}
	}
	return &p, nil
}
