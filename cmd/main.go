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
	"github.com/spf13/cobra"

	"go-trade-journal/internal/journal/config"
	delivery "go-trade-journal/internal/journal/delivery/http"
	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/internal/journal/service"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/security"
	"go-trade-journal/pkg/sqlite"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trade journal service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Trade Journal", logger.Field("name", cfg.App.Name))

	// Initialize database
	db, err := sqlite.NewDB(sqlite.Config{
		Path:          cfg.Database.Path,
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
		LogLevel:      cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Ensure the uploads directory exists
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		appLogger.Fatal("Failed to create uploads directory", logger.ErrorField(err))
	}

	tokenExpiry, err := time.ParseDuration(cfg.Auth.TokenExpiry)
	if err != nil {
		appLogger.Fatal("Invalid token expiry", logger.ErrorField(err))
	}
	cacheTTL, err := time.ParseDuration(cfg.Journal.SummaryCacheTTL)
	if err != nil {
		appLogger.Fatal("Invalid summary cache TTL", logger.ErrorField(err))
	}

	// Initialize repositories
	tradeRepo := repository.NewTradeRepository(db.DB)

	// Initialize services
	tokens := security.NewAuthService(cfg.Auth.JWTSecret, tokenExpiry)
	analyticsSvc := service.NewAnalyticsService(tradeRepo, appLogger, cacheTTL)
	screenshotSvc := service.NewScreenshotService(tradeRepo, cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB*1024*1024, appLogger)
	tradeSvc := service.NewTradeService(tradeRepo, screenshotSvc, analyticsSvc, appLogger)
	exportSvc := service.NewExportService(tradeRepo, appLogger)
	authSvc := service.NewAuthService(cfg.Auth.OwnerUsername, cfg.Auth.OwnerPasswordHash, tokens, tokenExpiry, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, appLogger, cfg.Auth.LoginRatePerSec, cfg.Auth.LoginBurst)
	authHandler.RegisterRoutes(apiV1.Group("/auth"))

	publicHandler := delivery.NewPublicHandler(tradeSvc, analyticsSvc, exportSvc, appLogger)
	publicHandler.RegisterRoutes(apiV1.Group("/cases"))

	tradeHandler := delivery.NewTradeHandler(tradeSvc, analyticsSvc, screenshotSvc, appLogger)
	adminGroup := apiV1.Group("/admin", delivery.OwnerMiddleware(tokens, appLogger))
	tradeHandler.RegisterRoutes(adminGroup)

	// Screenshot assets live outside the relational table
	e.Static("/uploads", cfg.Uploads.Dir)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "trade-journal"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing trade-journal CLI: %s\n", err)
		os.Exit(1)
	}
}
