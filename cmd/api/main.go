package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/repository/redisstore"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/sessiontoken"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend: accounts, job listings, applications and profiles.
// @host            localhost:8085
// @BasePath        /v1
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session_token
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(parseLevel(cfg.LogLevel))
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "env", cfg.Environment)
	secLogger := security.InitSecurityLogger("jobboard-api", cfg.Environment)
	defer secLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. Setup Database
	if cfg.MigrationsAuto {
		if err := database.MigrateUp(cfg.DBUrl); err != nil {
			logger.Log.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Session Store (Redis when configured)
	var sessionStore domain.SessionStore
	healthDeps := map[string]usecase.Pinger{"database": dbPool}
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory sessions", "error", err)
		}
		sessionStore = memory.NewSessionStore()
	} else {
		defer redis.Close()
		sessionStore = redisstore.NewSessionStore(redis.Client())
		healthDeps["redis"] = usecase.PingerFunc(redis.HealthCheck)
	}

	codec, err := sessiontoken.NewCodec(cfg.SessionSecret)
	if err != nil {
		logger.Log.Error("Failed to set up session tokens", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	txManager := postgres.NewTxManager(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Optional collaborators
	var appOpts []usecase.Option
	if cfg.SMTPConfigured() {
		appOpts = append(appOpts, usecase.WithNotifier(usecase.NewEmailNotifier(email.NewEmailService(cfg))))
	} else {
		logger.Log.Warn("SMTP not configured - status change emails are disabled")
	}

	var uploader usecase.PictureUploader
	if cfg.S3Configured() {
		s3Uploader, err := storage.NewS3Uploader(ctx, storage.S3ClientConfig{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			logger.Log.Error("Failed to set up object storage", "error", err)
			os.Exit(1)
		}
		uploader = s3Uploader
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	sessionUC := usecase.NewSessionUsecase(sessionStore, codec, cfg.SessionTTL)
	jobUC := usecase.NewJobUsecase(jobRepo, applicationRepo, userRepo, txManager)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, userRepo, txManager, appOpts...)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo,
		usecase.WithPictureProcessor(usecase.NewPictureProcessor(uploader)))
	healthUC := usecase.NewHealthUsecase(healthDeps)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		SessionUC:     sessionUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		ProfileUC:     profileUC,
		HealthUC:      healthUC,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
