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
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitWorker(ctx)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		log.Error("worker exited", zap.Error(err))
	}
}
