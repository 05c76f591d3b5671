package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/config"
	"github.com/studyhall-inc/studyhall-engine/pkg/database"
	"github.com/studyhall-inc/studyhall-engine/pkg/handlers"
	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/logging"
	"github.com/studyhall-inc/studyhall-engine/pkg/middleware"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
	"github.com/studyhall-inc/studyhall-engine/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

const migrationsDir = "migrations"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("ai_endpoint", cfg.AI.BaseURL),
		zap.String("storage_endpoint", cfg.Storage.Endpoint))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrationDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, migrationsDir, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	store, err := storage.NewMinIOStore(ctx, &storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create object store", zap.Error(err))
	}

	llmClient, err := llm.NewClient(&llm.Config{
		Endpoint:    cfg.AI.BaseURL,
		ChatModel:   cfg.AI.ChatModel,
		VisionModel: cfg.AI.VisionModel,
		APIKey:      cfg.AI.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	// Repositories
	materialRepo := repositories.NewMaterialRepository(db)
	aiMaterialRepo := repositories.NewAiMaterialRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	chatHistoryRepo := repositories.NewChatHistoryRepository(db)
	communityRepo := repositories.NewCommunityRepository(db)
	videoRepo := repositories.NewVideoRepository(db)

	// Services
	materialService := services.NewMaterialService(materialRepo, logger.Named("materials"))
	libraryService := services.NewLibraryService(aiMaterialRepo, noteRepo, logger.Named("library"))
	noteService := services.NewNoteService(noteRepo, llmClient, store, logger.Named("notes"))
	chatService := services.NewChatService(aiMaterialRepo, llmClient, logger.Named("chat"))
	chatHistoryService := services.NewChatHistoryService(chatHistoryRepo, logger.Named("chat_history"))
	communityService := services.NewCommunityService(communityRepo, materialRepo, logger.Named("community"))
	videoService := services.NewVideoService(videoRepo, logger.Named("videos"))

	// Handlers
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewMaterialsHandler(materialService, logger).RegisterRoutes(mux)
	handlers.NewLibraryHandler(libraryService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewNotesHandler(noteService, cfg.Storage.MaxUploadBytes, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAiChatHandler(chatService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewChatHistoryHandler(chatHistoryService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCommunityHandler(communityService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewVideosHandler(videoService, logger).RegisterRoutes(mux, authMiddleware)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           middleware.RequestLogger(logger.Named("http"))(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting studyhall-engine",
			zap.String("addr", addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
