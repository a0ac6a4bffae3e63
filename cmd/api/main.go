package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talent-marketplace/config"
	_ "go-talent-marketplace/docs" // Important for Swagger
	v1 "go-talent-marketplace/internal/delivery/http/v1"
	"go-talent-marketplace/internal/realtime"
	"go-talent-marketplace/internal/repository/postgres"
	"go-talent-marketplace/internal/usecase"
	"go-talent-marketplace/pkg/database"
	"go-talent-marketplace/pkg/id"
	"go-talent-marketplace/pkg/logger"
	"go-talent-marketplace/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Talent Marketplace API
// @version         1.0
// @description     Messaging and interview workflow backend for the talent marketplace.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talent marketplace backend", "port", cfg.Port)

	// 3. Setup ID generation
	if err := id.Init(cfg.SnowflakeNodeID); err != nil {
		logger.Log.Error("Failed to initialize snowflake node", "error", err)
		os.Exit(1)
	}

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Setup Redis (optional; rate limiter falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	interviewRepo := postgres.NewInterviewRequestRepository(dbPool)

	// 7. Setup Dispatcher and UseCases
	dispatcher := realtime.NewDispatcher()
	validate := validator.New()
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo, dispatcher)
	interviewUC := usecase.NewInterviewRequestUsecase(interviewRepo, userRepo, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		MessageUC:   messageUC,
		InterviewUC: interviewUC,
		Dispatcher:  dispatcher,
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
