package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"promptkit/internal/auth"
	"promptkit/internal/cache"
	"promptkit/internal/catalog"
	"promptkit/internal/config"
	"promptkit/internal/domain/services"
	"promptkit/internal/repository/postgres"
	"promptkit/internal/service"
	serviceauth "promptkit/internal/service/auth"
	"promptkit/internal/sorting"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed categories or demo data")
	demoEmail := flag.String("demo-email", "", "Create (or reuse) this Supabase user and seed demo folders and prompts for it")
	demoPassword := flag.String("demo-password", "promptkit-demo", "Password for a newly created demo user")
	demoUsername := flag.String("demo-username", "demo", "Profile username for the demo user")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := execAll(ctx, pool, postgres.DropStatements(tables)); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := execAll(ctx, pool, postgres.Schema(tables)); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	sortRegistry, err := sorting.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load sort options: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	promptRepo := postgres.NewPromptRepository(repoConfig, sortRegistry)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	likeRepo := postgres.NewLikeRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Short-lived process: an in-memory cache is enough
	memCache := cache.NewMemoryCache()
	sanitizer := service.NewTextSanitizer()

	categoryService := service.NewCategoryService(categoryRepo, txManager, memCache, cfg.CacheTTL, logger)

	log.Println("🏷️  Seeding categories...")
	categories, err := catalog.DefaultCategories()
	if err != nil {
		log.Fatalf("Failed to load category catalog: %v", err)
	}
	if err := categoryService.SeedCategories(ctx, categories); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("✅ %d categories ready", len(categories))

	if *demoEmail == "" {
		log.Println("🎉 Seeding complete!")
		return
	}

	log.Printf("👤 Ensuring demo user %s...", *demoEmail)
	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	userID, err := admin.EnsureUser(ctx, *demoEmail, *demoPassword, *demoUsername)
	if err != nil {
		log.Fatalf("Failed to ensure demo user: %v", err)
	}

	profileService := service.NewProfileService(profileRepo, sanitizer, logger)
	if _, err := profileService.UpsertProfile(ctx, &services.UpsertProfileRequest{
		UserID:   userID,
		Username: *demoUsername,
	}); err != nil {
		log.Fatalf("Failed to save demo profile: %v", err)
	}

	authorizer := serviceauth.NewOwnerBasedAuthorizer(promptRepo, folderRepo)
	folderService := service.NewFolderService(folderRepo, promptRepo, txManager, memCache, sanitizer, logger)
	promptService := service.NewPromptService(promptRepo, likeRepo, txManager, authorizer, memCache, sanitizer, logger)

	log.Println("📝 Seeding demo folders and prompts...")
	seeded, err := seedDemoContent(ctx, userID, folderService, promptService, categories)
	if err != nil {
		log.Fatalf("Failed to seed demo content: %v", err)
	}
	log.Printf("✅ Created %d demo prompts for %s (ID: %s)", seeded, *demoEmail, userID)

	log.Println("🎉 Seeding complete!")
}

// execAll runs statements in order, stopping at the first failure
func execAll(ctx context.Context, pool *pgxpool.Pool, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
