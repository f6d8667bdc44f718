// Package kv provides the byte-oriented key-value backends carts are
// persisted in: process memory, local files, Redis and SQL.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store reads and writes whole values by key. Set replaces the previous
// value atomically: after a failed Set the old value is still readable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
