package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/crud"
)

// backend is the data service selected by DATA_BACKEND, optionally fronted
// by the Redis cache.
type backend struct {
	// reader serves the site and the JSON API.
	reader crud.Reader
	// service is nil for the http backend, which is read-only.
	service crud.Service
	// pinger reports storage health; nil when there is nothing to ping.
	pinger interface{ Ping(context.Context) error }

	closers []func() error
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.Data.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, store.Close)
		b.reader, b.service, b.pinger = store, store, store

	case config.BackendHTTP:
		b.reader = crud.NewClient(cfg.Data.CRUDBaseURL, nil)

	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Data.Backend)
	}

	if cfg.Data.RedisURL != "" {
		client, err := crud.OpenRedis(ctx, cfg.Data.RedisURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.wrapCache(client, cfg, logger)
		logger.Info("collection cache enabled", "ttl", cfg.Data.CacheTTL)
	}

	logger.Info("data backend ready", "backend", cfg.Data.Backend)
	return b, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*crud.SQLStore, error) {
	var (
		db      *sql.DB
		dialect crud.Dialect
		err     error
	)
	switch cfg.Data.Backend {
	case config.BackendPostgres:
		dialect = crud.Postgres
		db, err = crud.OpenPostgres(cfg.Data.DatabaseURL)
	default:
		dialect = crud.SQLite
		db, err = crud.OpenSQLite(cfg.Data.SQLitePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect, err)
	}

	store, err := crud.NewSQLStore(ctx, db, dialect, crud.WithStoreLogger(logger))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise %s store: %w", dialect, err)
	}
	return store, nil
}

func (b *backend) wrapCache(client *redis.Client, cfg *config.Config, logger *slog.Logger) {
	if b.service != nil {
		cached := crud.NewCachedService(b.service, client, cfg.Data.CacheTTL, logger)
		b.reader, b.service = cached, cached
		return
	}
	b.reader = crud.NewCache(b.reader, client, cfg.Data.CacheTTL, logger)
}

// writable returns the service or an error for read-only backends.
func (b *backend) writable() (crud.Service, error) {
	if b.service == nil {
		return nil, errors.New("the configured data backend is read-only")
	}
	return b.service, nil
}

func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
