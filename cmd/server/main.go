package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/trainerpro/internal/ai"
	"alcyxob/trainerpro/internal/api"
	"alcyxob/trainerpro/internal/config"
	"alcyxob/trainerpro/internal/repository"
	"alcyxob/trainerpro/internal/repository/memory"
	"alcyxob/trainerpro/internal/repository/mongo"
	"alcyxob/trainerpro/internal/service"
	"alcyxob/trainerpro/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title TrainerPro Console API
// @version 1.0
// @description Students, weekly plans, schedules and workout templates for a personal trainer.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.App.Env)
	logger.Info("starting trainer console", "env", cfg.App.Env, "storage", cfg.Storage.Driver, "ai_provider", cfg.AI.Provider)

	// --- Repositories ---
	var (
		studentRepo  repository.StudentRepository
		templateRepo repository.TemplateRepository
	)
	switch cfg.Storage.Driver {
	case "mongo":
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			logger.Error("could not connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := mongo.DisconnectDB(dbClient); err != nil {
				logger.Error("failed to disconnect MongoDB", "error", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			logger.Warn("index creation failed", "error", err)
		}
		cancel()

		studentRepo = mongo.NewMongoStudentRepository(appDB)
		templateRepo = mongo.NewMongoTemplateRepository(appDB)
	default:
		now := time.Now()
		studentRepo = memory.NewStudentRepository(memory.SeedStudents(now))
		templateRepo = memory.NewTemplateRepository(memory.SeedTemplates(now))
	}

	// --- AI ---
	var generator ai.Generator
	switch cfg.AI.Provider {
	case "openai":
		generator = ai.NewOpenAIGenerator(cfg.AI.BaseURL, cfg.AI.Timeout)
	default:
		generator = ai.NewGeminiGenerator(cfg.AI.Timeout)
	}
	creds := ai.StaticKey(cfg.AI.APIKey)
	if creds.APIKey() == "" {
		logger.Warn("no AI API key configured; plan and text generation are disabled")
	}
	aiOpts := ai.Options{Model: cfg.AI.Model, Language: cfg.AI.Language}

	// --- Video storage ---
	var files storage.FileStorage
	if cfg.S3.Enabled() {
		files, err = storage.NewS3Storage(context.Background(), cfg.S3, logger)
		if err != nil {
			logger.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("S3 not configured; exercise video uploads are disabled")
	}

	// --- Services ---
	students := service.NewStudentService(studentRepo, time.Now, logger)
	plans := service.NewPlanService(students, ai.NewPlanGenerator(generator, creds, aiOpts, logger), logger)
	templates := service.NewTemplateService(templateRepo, ai.NewTextGenerator(generator, creds, aiOpts, logger), time.Now, logger)
	services := api.Services{
		Students:  students,
		Plans:     plans,
		Templates: templates,
		Dashboard: service.NewDashboardService(students, templates, plans, time.Now),
		Videos:    service.NewVideoService(students, files, cfg.S3.UploadExpiry, time.Now, logger),
	}
	if cfg.Auth.Enabled() {
		services.Auth = service.NewAuthService(cfg.Auth.PasswordHash, cfg.Auth.JWTSecret, cfg.Auth.Expiration, time.Now)
	} else {
		logger.Warn("console auth not configured; API is open")
	}

	// --- HTTP ---
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(api.AccessLog(logger), gin.Recovery())
	api.SetupRoutes(router, services, logger)

	// Generation requests are bounded by the AI timeout, not the usual 10s.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exiting")
}

func initLogger(env string) *slog.Logger {
	var handler slog.Handler
	switch env {
	case "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
