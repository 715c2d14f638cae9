package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"servicebook/internal/infra/db"
	"servicebook/internal/infra/docstore"
	"servicebook/internal/pkg/config"
	"servicebook/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewDocumentStore,
	),
)

// NewDocumentStore opens the backend selected by STORE_DRIVER.
func NewDocumentStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.DocumentStore, error) {
	attempts := cfg.Store.MaxTxnAttempts
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(attempts), nil

	case config.StoreDriverPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		store := docstore.NewPostgresStore(pool, logger, attempts)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.EnsureSchema(ctx)
			},
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return store, nil

	case config.StoreDriverRedis:
		client, cleanup, err := db.ConnectRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return docstore.NewRedisStore(client, logger, cfg.Redis.KeyPrefix, attempts), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
