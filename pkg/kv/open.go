package kv

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/octocat-supply/storefront/pkg/config"
	"github.com/octocat-supply/storefront/pkg/db"
	"github.com/octocat-supply/storefront/pkg/logger"
	"github.com/octocat-supply/storefront/pkg/migrate"
	"github.com/octocat-supply/storefront/pkg/redis"
)

// Backend is an opened Store together with the connections it owns.
type Backend struct {
	Store
	name    string
	closers []io.Closer
}

// Name is the configured backend kind.
func (b *Backend) Name() string {
	return b.name
}

// Ping checks the underlying store when it supports health checks.
func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.Store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases every connection the backend opened.
func (b *Backend) Close() error {
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i].Close())
	}
	b.closers = nil
	return err
}

// Open builds the store selected by cfg.Storage.Backend. The SQL backend
// runs pending migrations first when auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Backend, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	ctx = logg.WithField(ctx, "storage_backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		logg.Warn(ctx, "carts are kept in memory and will not survive a restart")
		return &Backend{Store: NewMemory(), name: config.StorageMemory}, nil

	case config.StorageFile:
		store, err := NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		logg.Info(logg.WithField(ctx, "dir", cfg.Storage.Dir), "file storage ready")
		return &Backend{Store: store, name: config.StorageFile}, nil

	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("kv: open redis: %w", err)
		}
		return &Backend{Store: NewRedis(client), name: config.StorageRedis, closers: []io.Closer{client}}, nil

	case config.StorageSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("kv: open database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("kv: migrate: %w", err), client.Close())
		}
		return &Backend{Store: NewSQL(client.DB()), name: config.StorageSQL, closers: []io.Closer{client}}, nil
	}
	return nil, fmt.Errorf("kv: unknown storage backend %q", cfg.Storage.Backend)
}
