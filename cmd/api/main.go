package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/projectflow/docs"
	"github.com/johnquangdev/projectflow/internal/adapter/handler"
	"github.com/johnquangdev/projectflow/internal/adapter/repository"
	"github.com/johnquangdev/projectflow/internal/infrastructure/cache"
	"github.com/johnquangdev/projectflow/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/projectflow/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/projectflow/internal/infrastructure/storage"
	"github.com/johnquangdev/projectflow/internal/usecase/auth"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	"github.com/johnquangdev/projectflow/internal/usecase/project"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
	pkgai "github.com/johnquangdev/projectflow/pkg/ai"
	"github.com/johnquangdev/projectflow/pkg/config"
	"github.com/johnquangdev/projectflow/pkg/jwt"
	"github.com/johnquangdev/projectflow/pkg/metrics"
	pkgmw "github.com/johnquangdev/projectflow/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/projectflow/pkg/validator"
)

// @title           ProjectFlow API
// @version         1.0
// @description     Turns recorded meetings into transcripts, summaries and project tasks

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Uploads carry the whole recording; leave room for the multipart envelope
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dK", cfg.Recording.MaxBytes/1024+1024)))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🔧 Initializing dependencies...")

	// Initialize Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	// Apply embedded migrations only when explicitly enabled in config.
	// Production deployments run cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			logger.Fatal("DB_AUTO_MIGRATE is enabled in production. Disable it and run cmd/migrate.")
		}
		if _, err := database.Migrate(db, migrate.Up, 0, logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping migrations; run cmd/migrate to manage the schema")
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Completion lock: Redis when enabled, process memory otherwise
	var locker cache.Locker
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient, "projectflow:")
	} else {
		logger.Warn("⚠️  Redis disabled; completion lock is local to this process")
		locker = cache.NewMemoryLocker(cache.NewMemoryStore(), "projectflow:")
	}

	// Initialize repositories
	logger.Info("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)

	// Initialize AI components
	logger.Info("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	if !asmClient.Configured() {
		logger.Warn("⚠️  ASSEMBLYAI_API_KEY not set; transcription requests will be rejected")
	}
	extractor := extraction.NewExtractor(logger, appMetrics,
		extraction.NewLLMProvider(pkgai.NewGroqClient(&cfg.Groq)),
		extraction.NewLLMProvider(pkgai.NewOpenAIClient(&cfg.OpenAI)),
	)

	deps := transcription.Deps{
		Transcriptions: transcriptionRepo,
		Projects:       projectRepo,
		Meetings:       meetingRepo,
		Tasks:          taskRepo,
		SpeechToText:   asmClient,
		Extractor:      extractor,
		Locker:         locker,
		Metrics:        appMetrics,
		Logger:         logger,
	}

	// Recording archive is optional
	if cfg.Storage.Enabled {
		logger.Info("🗄️  Connecting to object storage...")
		archive, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Warn("⚠️  Recording archive unavailable", zap.Error(err))
		} else {
			deps.Archiver = archive
		}
	}

	transcriptionService := transcription.NewService(deps, cfg)
	if err := transcriptionService.StartWorkerPool(ctx, cfg.Transcription.SweepWorkers); err != nil {
		logger.Fatal("Failed to start transcription sweeper", zap.Error(err))
	}
	defer transcriptionService.StopWorkerPool()

	projectService := project.NewProjectService(projectRepo, meetingRepo, taskRepo, transcriptionRepo)

	// Bearer tokens are issued by the external auth provider
	logger.Info("🔑 Initializing JWT validation...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	sessionService := auth.NewSessionService(userRepo, jwtManager, cache.NewMemoryStore(), logger)

	// Initialize handlers
	transcriptionHandler := handler.NewTranscriptionHandler(transcriptionService, cfg.Recording.MaxBytes, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	// Setup router with handlers
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		transcriptionHandler,
		projectHandler,
		httpmw.EchoAuth(sessionService),
		pkgmw.RequireProjectMember(projectService),
		registry,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
