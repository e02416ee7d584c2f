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

	"talentpool/backend/internal/config"
	"talentpool/backend/internal/httpserver"
	"talentpool/backend/internal/infrastructure/password"
	"talentpool/backend/internal/infrastructure/storage"
	"talentpool/backend/internal/infrastructure/token"
	authusecase "talentpool/backend/internal/usecase/auth"
	candidateusecase "talentpool/backend/internal/usecase/candidate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	rootCtx := context.Background()
	connectCtx, cancelConnect := context.WithTimeout(rootCtx, 30*time.Second)
	stores, err := storage.Open(connectCtx, cfg, logger)
	cancelConnect()
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stores.Close(ctx); err != nil {
			logger.Warn("closing store failed", "error", err)
		}
	}()

	tokenManager, err := token.NewJWTManager(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		logger.Error("failed to configure token codec", "error", err)
		os.Exit(1)
	}
	hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		logger.Error("failed to configure password hasher", "error", err)
		os.Exit(1)
	}

	authService := authusecase.NewService(stores.Users, tokenManager, hasher,
		authusecase.WithAccessTokenTTL(cfg.AccessTokenTTL))
	candidateService := candidateusecase.NewService(stores.Candidates)

	server := httpserver.NewServer(cfg, authService, candidateService, logger)
	logger.Info("HTTP server listening",
		"addr", server.Addr(),
		"store", cfg.StoreBackend,
		"algorithm", tokenManager.Algorithm(),
	)

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
