package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/petlove/spree-adyen/internal/config"
	"github.com/petlove/spree-adyen/internal/gateway"
	"github.com/petlove/spree-adyen/internal/infra"
	"github.com/petlove/spree-adyen/internal/logging"
	"github.com/petlove/spree-adyen/internal/server"
)

func main() {
	// Load .env if present; production relies on real env vars.
	_ = godotenv.Load()

	prefs, err := config.LoadPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load preferences: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(prefs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cache, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("connect redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}()

	policy := gateway.Policy{
		Require3DSecure:   true,
		ProfilesSupported: true,
		SourceRequired:    true,
	}

	srv, err := server.New(cfg, db, cache, nil, policy, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
