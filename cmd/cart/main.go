package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/internal/catalog"
	"github.com/octocat-supply/storefront/internal/cli"
	"github.com/octocat-supply/storefront/pkg/config"
	"github.com/octocat-supply/storefront/pkg/kv"
	"github.com/octocat-supply/storefront/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	logg := logger.New(logger.Options{ServiceName: "cart", Output: os.Stderr})
	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return 1
	}
	logg = logger.New(logger.Options{
		ServiceName: "cart",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.Backend == config.StorageMemory {
		logg.Warn(ctx, "memory storage is discarded when the command exits")
	}

	opener := newCartOpener(cfg, logg)
	defer func() {
		if err := opener.Close(); err != nil {
			logg.Error(context.Background(), "error closing cart storage", err)
		}
	}()

	root := cli.NewRootCommand(cli.Deps{
		Catalog:  catalog.Default(),
		OpenCart: opener.Open,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// cartOpener opens the configured backend on first use and keeps it until
// Close.
type cartOpener struct {
	cfg     *config.Config
	logg    *logger.Logger
	backend *kv.Backend
}

func newCartOpener(cfg *config.Config, logg *logger.Logger) *cartOpener {
	return &cartOpener{cfg: cfg, logg: logg}
}

func (o *cartOpener) Open(ctx context.Context) (*cart.Cart, error) {
	if o.backend == nil {
		backend, err := kv.Open(ctx, o.cfg, o.logg)
		if err != nil {
			return nil, fmt.Errorf("opening cart storage: %w", err)
		}
		o.backend = backend
	}
	storage := cart.NewStorage(o.backend, o.cfg.Storage.Key,
		cart.WithMaxBytes(o.cfg.Storage.MaxBytes),
		cart.WithStorageLogger(o.logg),
	)
	return cart.New(ctx, storage, cart.WithPricing(cart.Pricing{
		FreeShippingThreshold: o.cfg.Cart.FreeShippingThreshold,
		ShippingFee:           o.cfg.Cart.ShippingFee,
	})), nil
}

func (o *cartOpener) Close() error {
	if o.backend == nil {
		return nil
	}
	err := o.backend.Close()
	o.backend = nil
	return err
}
