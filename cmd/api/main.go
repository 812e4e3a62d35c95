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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/transquote/platform-api/internal/api"
	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/config"
	"github.com/transquote/platform-api/internal/directory"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/middleware"
	"github.com/transquote/platform-api/internal/repository/postgres"
	"github.com/transquote/platform-api/internal/service"
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

	// Global (public schema) tables; tenant schemas are migrated at
	// provisioning time.
	if err := db.AutoMigrate(&domain.Tenant{}, &domain.JobExecution{}); err != nil {
		appLogger.Fatal("Failed to migrate global tables", err)
	}

	appLogger.Info("Database connection established")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	repo, err := postgres.NewPostgresRepository(db)
	if err != nil {
		appLogger.Fatal("Failed to initialize repository", err)
	}

	// Initialize services
	tenantDirectory := directory.NewDirectory(repo, redisClient, cfg.TenantCacheTTL, appLogger)
	authService := auth.NewService(tenantDirectory, repo.Schemas(), cfg, appLogger)
	quoteService := service.NewQuoteService(repo.Schemas())

	// Initialize middleware
	tenantMiddleware := middleware.NewTenantMiddleware(tenantDirectory, cfg.BaseDomain)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)
	httpMetrics := middleware.NewHTTPMetrics("platform-api")

	// Initialize server
	server := api.NewServer(
		api.NewAuthHandler(authService),
		api.NewTenantHandler(tenantDirectory),
		api.NewJobHandler(repo.JobExecution(), schedCfg.StuckAfter),
		api.NewQuoteHandler(quoteService),
		tenantMiddleware,
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
	)

	// Initialize router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(httpMetrics.Middleware())

	// Health check and metrics endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	// Setup API routes
	server.SetupRoutes(router.Group("/api/v1"), cfg.GlobalRateLimit)
	server.SetupPublicRoutes(router.Group("/public"))

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
