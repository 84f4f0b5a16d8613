package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptkit/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Profiles         string
	Folders          string
	Categories       string
	Prompts          string
	PromptCategories string
	PromptLikes      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Profiles:         fmt.Sprintf("%sprofiles", prefix),
		Folders:          fmt.Sprintf("%sfolders", prefix),
		Categories:       fmt.Sprintf("%scategories", prefix),
		Prompts:          fmt.Sprintf("%sprompts", prefix),
		PromptCategories: fmt.Sprintf("%sprompt_categories", prefix),
		PromptLikes:      fmt.Sprintf("%sprompt_likes", prefix),
	}
}

// All returns every table name in dependency order (referenced tables first).
func (t *TableNames) All() []string {
	return []string{t.Profiles, t.Folders, t.Categories, t.Prompts, t.PromptCategories, t.PromptLikes}
}

// CreateConnectionPool creates a pgx pool for databaseURL.
//
// Supabase's transaction pooler (port 6543) does not support prepared
// statements, so on that port the pool switches to QueryExecModeCacheDescribe
// unless the connection string already sets default_query_exec_mode.
// Table prefixes are interpolated with fmt.Sprintf before the SQL reaches
// the server, so each environment gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or pool when there is none.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
