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

	"github.com/radiy-net/radiy-client/internal/cache"
	"github.com/radiy-net/radiy-client/internal/gateway"
	"github.com/radiy-net/radiy-client/internal/session"
	"github.com/radiy-net/radiy-client/internal/shell"
	"github.com/radiy-net/radiy-client/internal/source"
	"github.com/radiy-net/radiy-client/internal/tokens"
	"github.com/radiy-net/radiy-client/pkg/config"
	"github.com/radiy-net/radiy-client/pkg/logging"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Radiy client node")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Token store
	store := tokens.NewStore(cfg.Tokens.Path)

	// Data source: the remote gateway, or the in-memory provider in demo mode
	var src session.Source
	if cfg.DemoMode {
		logger.Info("Demo mode: serving fixture data")
		src = source.NewStatic()
	} else {
		responseCache, err := cache.New(&cfg.Cache)
		if err != nil {
			logger.Fatal("Failed to initialize cache", zap.Error(err))
		}
		defer responseCache.Close()

		client, err := gateway.New(&cfg.Gateway, store, responseCache)
		if err != nil {
			logger.Fatal("Failed to initialize gateway", zap.Error(err))
		}
		src = client
	}

	// Session controller and startup auth check
	ctrl := session.NewController(src, store, &cfg.Session)

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := ctrl.Bootstrap(bootCtx); err != nil {
		logger.Warn("Startup auth check failed, continuing unauthenticated", zap.Error(err))
	}
	cancel()

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	shell.NewRouter(ctrl, src).SetupRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Shell.Host, cfg.Shell.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Shell contract listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Client exited")
}
