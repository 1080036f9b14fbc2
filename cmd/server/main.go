package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agribot/internal/assistant"
	"agribot/internal/cache"
	"agribot/internal/config"
	"agribot/internal/handler"
	"agribot/internal/repository"
	"agribot/internal/server"
	"agribot/internal/service"
	"agribot/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Migrations ---
	if err := config.RunMigrations(ctx, dbPool); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	// --- Redis ---
	redisCache := cache.NewCache(cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	// --- Sessions ---
	authority := session.NewAuthority(session.NewRedisStore(redisCache), cfg.Session.Secret, cfg.Session.TTL, logger)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	feedbackRepo := repository.NewFeedbackRepository(dbPool)
	chatRepo := repository.NewChatRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, authority, logger)
	services := server.Services{
		Auth:     authService,
		Accounts: service.NewAccountService(userRepo, logger),
		Profiles: service.NewProfileService(userRepo),
		Feedback: service.NewFeedbackService(feedbackRepo),
		Chat:     service.NewChatService(assistant.NewClient(cfg.Assistant), chatRepo, logger),
	}
	if cfg.Assistant.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, the chatbot will answer that the AI is unavailable")
	}

	// --- Admin Bootstrap ---
	if _, err := authService.BootstrapAdmin(ctx, service.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}); err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	// --- Setup Gin Router ---
	router, err := server.NewRouter(server.Options{
		Config:    cfg,
		Authority: authority,
		Counter:   redisCache,
		Checks: map[string]handler.Pinger{
			"db":    dbPool,
			"redis": redisCache,
		},
		Logger: logger,
	}, services)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
