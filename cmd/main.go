package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/poolmvp/usersvc/config"
	"github.com/poolmvp/usersvc/internal/app"
	"github.com/poolmvp/usersvc/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A server that cannot reach its database should not pretend to be
	// healthy: any startup failure exits nonzero before serving.
	if err := app.New(cfg, logger).Run(ctx); err != nil {
		logger.Fatalf("startup failed: %v", err)
	}
}
