package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/database"
	"github.com/osse101/FarmBot_Go/internal/database/memory"
	"github.com/osse101/FarmBot_Go/internal/database/postgres"
	"github.com/osse101/FarmBot_Go/internal/database/redis"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Store is a ledger store that owns a connection
type Store interface {
	repository.LedgerStore
	Close()
}

// OpenStore connects the ledger backend named by cfg.StoreBackend.
// The postgres backend is migrated before it is returned.
func OpenStore(ctx context.Context, cfg *config.Config, startingCoins int64) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		store, err = openPostgres(ctx, cfg, startingCoins)
	case config.StoreBackendRedis:
		client, cerr := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if cerr != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRD, cerr)
		}
		store = redis.NewStore(client, startingCoins)
	case config.StoreBackendMemory:
		store = memory.NewStore(startingCoins)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend, "starting_coins", startingCoins)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, startingCoins int64) (Store, error) {
	dsn := cfg.GetDBConnString()

	slog.Info(LogMsgMigrationsRunning)
	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	pool, err := database.NewPool(ctx, dsn, cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	return postgres.NewStore(pool, startingCoins), nil
}

// RetryPolicy builds the storage retry budget from configuration
func RetryPolicy(cfg *config.Config) repository.RetryPolicy {
	return repository.RetryPolicy{
		MaxRetries: cfg.StorageRetryMax,
		BaseDelay:  cfg.StorageRetryBase,
		MaxDelay:   StorageRetryMaxDelay,
	}
}
