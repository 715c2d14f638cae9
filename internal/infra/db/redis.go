package db

import (
	"context"
	"log/slog"
	"time"

	"servicebook/internal/pkg/config"
	"servicebook/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(cfg config.RedisConfig) (*redis.Client, func(), error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse redis url")
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("error closing redis client", "error", err)
		}
	}
	return client, cleanup, nil
}
