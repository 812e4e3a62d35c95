package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/transquote/platform-api/internal/config"
	"github.com/transquote/platform-api/internal/directory"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository/postgres"
	"github.com/transquote/platform-api/internal/scheduler"
	"github.com/transquote/platform-api/internal/scheduler/jobs"
	"github.com/transquote/platform-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}
	schedCfg := config.LoadSchedulerConfig()

	db, err := config.NewDatabase()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDatabase(db)

	if err := db.AutoMigrate(&domain.JobExecution{}); err != nil {
		appLogger.Fatal("Failed to migrate global tables", err)
	}

	repo, err := postgres.NewPostgresRepository(db)
	if err != nil {
		appLogger.Fatal("Failed to initialize repository", err)
	}

	// The scheduler runs without Redis on purpose: a cold directory read per
	// scan is fine at cron frequency.
	tenantDirectory := directory.NewDirectory(repo, nil, cfg.TenantCacheTTL, appLogger)

	// Initialize S3 for audio object deletion
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}

	// Register maintenance jobs
	runner := scheduler.NewRunner(tenantDirectory, repo, appLogger)
	runner.Register(jobs.NewAudioCleanup(s3Client, s3Config.BucketName, schedCfg.AudioCleanupInterval, appLogger))
	runner.Register(jobs.NewQuoteLinkExpiry(schedCfg.LinkExpiryInterval))
	runner.Register(jobs.NewCostUpdate(schedCfg.CostUpdateInterval))

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runner.Start()

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down scheduler...")

	runner.Stop()
	appLogger.Sync()
}
