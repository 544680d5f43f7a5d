// @title           E-City API
// @version         1.0
// @description     Civic issue reporting and tracking API
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "ecity-api/docs" // Swagger docs import

	"ecity-api/internal/auth"
	"ecity-api/internal/client"
	"ecity-api/internal/config"
	"ecity-api/internal/database"
	"ecity-api/internal/job"
	"ecity-api/internal/metrics"
	"ecity-api/internal/realtime"
	"ecity-api/internal/repository"
	"ecity-api/internal/router"
	"ecity-api/internal/service"
)

const (
	dbRetryInterval   = 5 * time.Second
	dbMaxAttempts     = 12
	dbStatsInterval   = 15 * time.Second
	migrateMaxRetries = 3
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting E-City API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set, using an insecure development secret")
		cfg.JWT.Secret = "ecity-dev-secret"
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Initialize database
	db, err := database.Connect(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, dbRetryInterval, dbMaxAttempts, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrateWithRetry(db, logger, migrateMaxRetries); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	database.RegisterMetricsCallbacks(db, m)
	database.StartDBStatsCollector(ctx, db, m, dbStatsInterval)

	// Redis backs the issue rate limiter; without it the limiter is disabled
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, issue rate limiting disabled", zap.Error(err))
	} else if redisClient == nil {
		logger.Info("Redis not configured, issue rate limiting disabled")
	} else {
		defer redisClient.Close()
	}

	// Initialize S3 client
	var images client.ImageStore
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(ctx, &cfg.S3, m)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, issue images disabled", zap.Error(err))
		} else {
			images = s3Client
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, issue images disabled")
	}

	// Live issue feed
	hub := realtime.NewHub(logger, m)
	go hub.Run(ctx)

	// Background jobs
	scheduler := job.NewScheduler(logger)
	snapshot := job.NewMetricsSnapshotJob(service.NewStatsService(repository.NewIssueRepository(db)), m, logger)
	if err := scheduler.Add("metrics-snapshot", cfg.Jobs.MetricsCron, snapshot); err != nil {
		logger.Fatal("Failed to schedule metrics snapshot job", zap.Error(err))
	}
	snapshot.Run()
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:              db,
		Redis:           redisClient,
		Logger:          logger,
		Tokens:          auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry),
		BasePath:        cfg.Server.BasePath,
		Metrics:         m,
		Images:          images,
		Hub:             hub,
		CORSOrigins:     cfg.CORS.Origins(),
		IssuesPerWindow: cfg.RateLimit.IssuesPerWindow,
		IssueWindow:     cfg.RateLimit.Window,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("E-City API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	stop()

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
