package main

import (
	"context"
	"os/signal"
	"syscall"

	"quotes-aggregator/internal/bootstrap"
	"quotes-aggregator/internal/config"
	"quotes-aggregator/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
	if lvl := config.Load().LogLevel; lvl != "" {
		_ = logx.SetLevel(lvl)
	}
}

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		logger.Error("api exited", zap.Error(err))
	}
}
