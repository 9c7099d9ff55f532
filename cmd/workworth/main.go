package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"workworth/internal/config"
	apphttp "workworth/internal/http"
	applog "workworth/internal/log"
	"workworth/internal/services"
	"workworth/internal/storage"
)

func main() {
	// Optional .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "workworth",
	})
	slog.SetDefault(logger.Logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var kv storage.KV
	switch cfg.DataBackend {
	case "sqlite":
		sqliteKV, err := storage.NewSQLiteKV(cfg.DBPath)
		if err != nil {
			logger.Error("Failed to open sqlite database", "error", err, "path", cfg.DBPath)
			os.Exit(1)
		}
		kv = sqliteKV
		logger.Info("Initialized sqlite backend", "path", cfg.DBPath)
	default:
		kv = storage.NewMemoryKV()
		logger.Info("Initialized memory backend")
	}
	defer kv.Close()

	repo := storage.NewRepository(kv)
	service := services.NewWorkworthService(repo)

	srv := apphttp.NewServer(":"+cfg.Port, service, logger)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = cfg.IdleTimeout
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting workworth server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
