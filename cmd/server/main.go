package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/highwayhustle/backend/internal/api"
	"github.com/highwayhustle/backend/internal/config"
	"github.com/highwayhustle/backend/internal/factory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		Ledger:      cfg.Ledger,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		factoryCfg.RedisConfig = &cfg.Redis
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		Clock:            app.Clock,
		PlayerController: app.PlayerController,
		LedgerStatus:     app.Dispatcher,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Contract checks need RPC round trips; run them after the server
	// is accepting requests so a slow chain never delays startup.
	go func() {
		initCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		app.Dispatcher.InitAll(initCtx)
	}()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Drain queued mirror events before exiting
	app.Dispatcher.Close()

	if err := app.Storage.Close(); err != nil {
		logger.Error("storage close error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
