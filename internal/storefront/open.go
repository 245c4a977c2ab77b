package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/remote"
	"github.com/fjod/go_cart/storefront/internal/session"
)

// Open builds a Storefront from configuration. The returned close function
// releases the session backend.
func Open(ctx context.Context, cfg config.Client, logger *slog.Logger) (*Storefront, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := remote.New(remote.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Breaker: remote.BreakerConfig{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerOpenTimeout,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("remote client: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(client, store, logger), closeStore, nil
}

func openStore(ctx context.Context, cfg config.Client) (session.Store, func() error, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), func() error { return nil }, nil

	case config.SessionBackendSQLite:
		store, err := session.NewSQLiteStore(cfg.SessionPath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite session store: %w", err)
		}
		return store, store.Close, nil

	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err), rdb.Close())
		}
		return session.NewRedisStore(rdb, cfg.SessionKey), rdb.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
}
