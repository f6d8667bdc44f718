// Package redis connects the storefront to Redis, where carts persist as
// plain string values under the "sf:cart:" namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/octocat-supply/storefront/pkg/config"
	"github.com/octocat-supply/storefront/pkg/logger"
)

const cartNamespace = "sf:cart"

// ErrNil is returned by LoadCart when nothing is stored under the key.
var ErrNil = redis.Nil

var errNoConnection = errors.New("redis: client has no connection")

// Cmdable is the slice of go-redis the cart store needs. *redis.Client,
// *redis.ClusterClient and test doubles all satisfy it.
type Cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type Client struct {
	cmd     Cmdable
	closer  io.Closer
	cartTTL time.Duration
}

// NewWithCmdable wraps an existing connection. cartTTL of zero keeps carts
// until overwritten.
func NewWithCmdable(cmd Cmdable, cartTTL time.Duration) *Client {
	return &Client{cmd: cmd, cartTTL: cartTTL}
}

// New dials Redis from config and pings it before returning.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}
	conn := redis.NewClient(opts)
	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"redis_addr": opts.Addr,
			"redis_db":   opts.DB,
			"cart_ttl":   cfg.CartTTL.String(),
		}), "redis connection established")
	}
	return &Client{cmd: conn, closer: conn, cartTTL: cfg.CartTTL}, nil
}

// options prefers the URL form; explicit pool and timeout settings fill
// whatever the URL leaves unset.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	case cfg.Address != "":
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password}
	default:
		return nil, errors.New("redis url or address is required")
	}

	fill(&opts.DB, cfg.DB)
	fill(&opts.PoolSize, cfg.PoolSize)
	fill(&opts.MinIdleConns, cfg.MinIdleConns)
	fill(&opts.DialTimeout, cfg.DialTimeout)
	fill(&opts.ReadTimeout, cfg.ReadTimeout)
	fill(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func fill[T comparable](dst *T, fallback T) {
	var zero T
	if *dst == zero {
		*dst = fallback
	}
}

// CartKey namespaces a cart storage key.
func CartKey(storageKey string) string {
	return cartNamespace + ":" + strings.TrimSpace(storageKey)
}

// LoadCart returns the payload stored for storageKey, or ErrNil.
func (c *Client) LoadCart(ctx context.Context, storageKey string) ([]byte, error) {
	if c.cmd == nil {
		return nil, errNoConnection
	}
	return c.cmd.Get(ctx, CartKey(storageKey)).Bytes()
}

// SaveCart overwrites the payload for storageKey, refreshing its TTL.
func (c *Client) SaveCart(ctx context.Context, storageKey string, payload []byte) error {
	if c.cmd == nil {
		return errNoConnection
	}
	return c.cmd.Set(ctx, CartKey(storageKey), payload, c.cartTTL).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	if c.cmd == nil {
		return errNoConnection
	}
	return c.cmd.Ping(ctx).Err()
}

// Close is a no-op for clients built with NewWithCmdable.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
