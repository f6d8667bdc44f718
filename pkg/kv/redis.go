package kv

import (
	"context"
	"errors"

	"github.com/octocat-supply/storefront/pkg/redis"
)

// Redis stores values under the client's cart namespace.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.LoadCart(ctx, key)
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.SaveCart(ctx, key, value)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
