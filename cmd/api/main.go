package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahma-center/community-api/internal/api"
	"github.com/rahma-center/community-api/internal/api/handler"
	"github.com/rahma-center/community-api/internal/api/middleware"
	"github.com/rahma-center/community-api/internal/catalog"
	"github.com/rahma-center/community-api/internal/config"
	"github.com/rahma-center/community-api/internal/drive"
	"github.com/rahma-center/community-api/internal/logger"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	// The Drive client is optional at boot: without credentials the service
	// still serves /health, and the media endpoints report misconfiguration.
	var fs drive.Client
	driveClient, err := drive.NewGoogleClient(&drive.GoogleConfig{
		ServiceAccountEmail: cfg.Google.ServiceAccountEmail,
		PrivateKey:          cfg.Google.PrivateKey,
	})
	if err != nil {
		logger.Warn("Drive client unavailable, media endpoints disabled: %v", err)
	} else {
		fs = driveClient
	}

	cat := catalog.New(fs, &catalog.Options{
		ListTTL: time.Duration(cfg.Cache.ListTTLSeconds) * time.Second,
	})
	resolver := catalog.NewResolver(fs, nil, time.Duration(cfg.Cache.CategoryTTLMinutes)*time.Minute)

	mediaHandler := handler.NewMediaHandler(cat, resolver, fs, cfg.Google.RootFolderID)
	streamHandler := handler.NewStreamHandler(fs)

	router := api.SetupRouter(mediaHandler, streamHandler, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
