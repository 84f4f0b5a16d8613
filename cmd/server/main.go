package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"promptkit/internal/auth"
	"promptkit/internal/cache"
	"promptkit/internal/config"
	"promptkit/internal/handler"
	"promptkit/internal/middleware"
	"promptkit/internal/repository/postgres"
	"promptkit/internal/service"
	serviceauth "promptkit/internal/service/auth"
	"promptkit/internal/sorting"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT verifier for Supabase access tokens
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	stat := pool.Stat()
	logger.Info("database connected",
		"max_conns", stat.MaxConns(),
		"total_conns", stat.TotalConns(),
	)

	// Cache: Redis when configured, in-process otherwise
	var appCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.TablePrefix)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		appCache = redisCache
		logger.Info("redis cache enabled", "ttl", cfg.CacheTTL)
	} else {
		appCache = cache.NewMemoryCache()
		logger.Info("in-memory cache enabled", "ttl", cfg.CacheTTL)
	}

	sortRegistry, err := sorting.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load sort options: %v", err)
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	promptRepo := postgres.NewPromptRepository(repoConfig, sortRegistry)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	likeRepo := postgres.NewLikeRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Services
	sanitizer := service.NewTextSanitizer()
	authorizer := serviceauth.NewOwnerBasedAuthorizer(promptRepo, folderRepo)
	folderService := service.NewFolderService(folderRepo, promptRepo, txManager, appCache, sanitizer, logger)
	promptService := service.NewPromptService(promptRepo, likeRepo, txManager, authorizer, appCache, sanitizer, logger)
	categoryService := service.NewCategoryService(categoryRepo, txManager, appCache, cfg.CacheTTL, logger)
	profileService := service.NewProfileService(profileRepo, sanitizer, logger)
	extensionService := service.NewExtensionService(jwtVerifier, folderRepo, categoryRepo, promptRepo, appCache, cfg.CacheTTL, logger)

	logger.Info("services initialized")

	router := handler.NewRouter(&handler.Handlers{
		Health:      handler.NewHealthHandler(pool),
		Folder:      handler.NewFolderHandler(folderService, logger),
		Prompt:      handler.NewPromptHandler(promptService, logger),
		SortOptions: handler.NewSortOptionsHandler(sortRegistry, logger),
		Category:    handler.NewCategoryHandler(categoryService, logger),
		Profile:     handler.NewProfileHandler(profileService, logger),
		Extension:   handler.NewExtensionHandler(extensionService, logger),
	}, jwtVerifier, logger)

	// Order: CORS → Recovery → Router (auth lives inside the router)
	var h http.Handler = router
	h = middleware.Recovery(logger)(h)

	// CORS must wrap everything so OPTIONS pre-flight requests never hit auth
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
