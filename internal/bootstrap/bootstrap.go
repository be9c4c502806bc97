package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/config"
	"quotes-aggregator/internal/infrastructure/memstore"
	"quotes-aggregator/internal/infrastructure/pg"
	redisstore "quotes-aggregator/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrMissingDBURL   = errors.New("DATABASE_URL is required for STORAGE=pg")
	ErrUnknownStorage = errors.New("unknown STORAGE backend")
)

// ProvideStore builds the sample store selected by STORAGE.
func ProvideStore(ctx context.Context, cfg config.Config, log *zap.Logger) (application.RateStore, func(), error) {
	switch cfg.Storage {
	case "", "memory":
		log.Info("storage_selected", zap.String("backend", "memory"))
		return memstore.New(), func() {}, nil

	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
		log.Info("storage_selected", zap.String("backend", "pg"))
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return pg.NewRateRepo(db), cleanup, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("storage_selected", zap.String("backend", "redis"), zap.String("prefix", cfg.RedisPrefix))
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return redisstore.New(client, cfg.RedisPrefix), cleanup, nil

	default:
		return nil, func() {}, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
	}
}
