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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/meetingmind/docs"
	pkgvalidator "github.com/johnquangdev/meetingmind/pkg/validator"

	"github.com/johnquangdev/meetingmind/internal/adapter/handler"
	"github.com/johnquangdev/meetingmind/internal/bootstrap"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/storage"
	meetingUsecase "github.com/johnquangdev/meetingmind/internal/usecase/meeting"
	teamUsecase "github.com/johnquangdev/meetingmind/internal/usecase/team"
	"github.com/johnquangdev/meetingmind/pkg/config"
	"github.com/johnquangdev/meetingmind/pkg/jwt"
)

// @title           MeetingMind API
// @version         1.0
// @description     Meetings, action items and teams for MeetingMind

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

	logger, err := bootstrap.NewLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	ctx := context.Background()

	logger.Info("🔧 Initializing dependencies...")

	stores, err := bootstrap.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open stores", zap.Error(err))
	}
	defer stores.Close()

	logger.Info("📦 Connecting to object storage...")
	audioStorage, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)

	meetingService := meetingUsecase.NewMeetingService(
		stores.Meetings,
		stores.Teams,
		audioStorage,
		meetingUsecase.Options{
			DemoUserID:   cfg.Demo.UserID,
			DemoTTL:      cfg.Demo.MeetingTTL,
			UploadExpiry: cfg.Storage.UploadExpiry,
		},
		logger,
	)
	teamService := teamUsecase.NewTeamService(
		stores.Teams,
		teamUsecase.ListingStrategy(cfg.Store.TeamListing),
		logger,
	)
	if cfg.Store.TeamListing == config.TeamListingScan {
		logger.Warn("team listing uses a full table scan", zap.String("strategy", cfg.Store.TeamListing))
	}

	// Setup router with handlers
	router := handler.NewRouter(
		cfg,
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewTeamHandler(teamService, logger),
		httpmw.EchoAuth(jwtManager),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("store", cfg.Store.Backend),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}
