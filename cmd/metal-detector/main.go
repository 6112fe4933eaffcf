package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MetalDetectorRocks/metal-detector/internal/api"
	"github.com/MetalDetectorRocks/metal-detector/internal/config"
	"github.com/MetalDetectorRocks/metal-detector/internal/database"
	"github.com/MetalDetectorRocks/metal-detector/internal/follow"
	"github.com/MetalDetectorRocks/metal-detector/internal/logging"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider/discogs"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider/spotify"
	"github.com/MetalDetectorRocks/metal-detector/internal/version"
	"github.com/MetalDetectorRocks/metal-detector/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("MD_CONFIG_PATH")
	if configPath == "" {
		configPath = "/data/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logManager, logger := logging.NewManager(logging.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		FilePath:      cfg.Logging.FilePath,
		FileMaxSizeMB: cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:  cfg.Logging.FileMaxFiles,
	})
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready", slog.String("path", cfg.Database.Path))

	// Catalog adapters and facade
	rateLimiters := provider.NewRateLimiterMap()
	registry := provider.NewRegistry()
	registry.Register(discogs.New(discogs.Config{
		BaseURL:   cfg.Providers.Discogs.BaseURL,
		Token:     cfg.Providers.Discogs.Token,
		UserAgent: cfg.Providers.Discogs.UserAgent,
	}, rateLimiters, logger))
	registry.Register(spotify.New(spotify.Config{
		BaseURL:      cfg.Providers.Spotify.BaseURL,
		AuthURL:      cfg.Providers.Spotify.AuthURL,
		ClientID:     cfg.Providers.Spotify.ClientID,
		ClientSecret: cfg.Providers.Spotify.ClientSecret,
	}, rateLimiters, logger))

	facade := provider.NewFacade(registry, logger)
	followService := follow.NewService(db, facade)

	router := api.NewRouter(api.RouterDeps{
		Catalog:  facade,
		Follows:  followService,
		Logger:   logger,
		BasePath: cfg.Server.BasePath,
	})

	logger.Info("starting metal-detector",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reload logging settings when the config file changes
	go watcher.NewService(configPath, logManager, logger).Start(ctx)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
