package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/octocat-supply/storefront/pkg/kv"
	"github.com/octocat-supply/storefront/pkg/logger"
	"github.com/octocat-supply/storefront/pkg/metrics"
)

// DefaultStorageKey is the key a single-user cart is stored under.
const DefaultStorageKey = "octocat-cart"

// DefaultMaxBytes matches the usual browser local storage quota.
const DefaultMaxBytes int64 = 5 << 20

// ErrQuotaExceeded is reported when an encoded cart is larger than the
// configured storage quota.
var ErrQuotaExceeded = errors.New("cart: storage quota exceeded")

// Persister loads and saves cart contents. Implementations absorb their
// own failures: Load falls back to an empty cart and Save leaves the
// previously stored value in place.
type Persister interface {
	Load(ctx context.Context) []LineItem
	Save(ctx context.Context, items []LineItem)
}

// Storage persists a cart as a JSON array under a single key.
type Storage struct {
	store    kv.Store
	key      string
	maxBytes int64
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
}

type StorageOption func(*Storage)

// WithMaxBytes sets the quota; values <= 0 disable it.
func WithMaxBytes(n int64) StorageOption {
	return func(s *Storage) { s.maxBytes = n }
}

func WithStorageLogger(logg *logger.Logger) StorageOption {
	return func(s *Storage) {
		if logg != nil {
			s.logg = logg
		}
	}
}

func WithStorageMetrics(m *metrics.CartMetrics) StorageOption {
	return func(s *Storage) { s.metrics = m }
}

func NewStorage(store kv.Store, key string, opts ...StorageOption) *Storage {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Storage{
		store:    store,
		key:      key,
		maxBytes: DefaultMaxBytes,
		logg:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Key() string {
	return s.key
}

// Load returns the stored cart, or an empty cart when nothing usable is
// stored. It never fails.
func (s *Storage) Load(ctx context.Context) []LineItem {
	items, _ := s.Read(ctx)
	return items
}

// Read is Load that also reports a failed backend read. A missing key or a
// malformed payload is not an error: both read as an empty cart.
func (s *Storage) Read(ctx context.Context) ([]LineItem, error) {
	ctx = s.logg.WithStorageKey(ctx, s.key)

	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		s.logg.Debug(ctx, "no stored cart, starting empty")
		return []LineItem{}, nil
	}
	if err != nil {
		s.fail(ctx, "load", "failed to read stored cart", err)
		return []LineItem{}, err
	}

	items, err := decodeItems(raw)
	if err != nil {
		s.fail(ctx, "load", "failed to decode stored cart", err)
		return []LineItem{}, nil
	}

	clean, dropped := sanitize(items)
	if dropped > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped", dropped), "dropped invalid entries from stored cart")
	}
	return clean, nil
}

// Save writes items under the storage key. Failures are logged and counted.
func (s *Storage) Save(ctx context.Context, items []LineItem) {
	if err := s.save(ctx, items); err != nil {
		ctx = s.logg.WithStorageKey(ctx, s.key)
		s.fail(ctx, "save", "failed to persist cart", err)
	}
}

func (s *Storage) save(ctx context.Context, items []LineItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}
	if s.maxBytes > 0 && int64(len(payload)) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes over a %d byte limit", ErrQuotaExceeded, len(payload), s.maxBytes)
	}
	return s.store.Set(ctx, s.key, payload)
}

func (s *Storage) fail(ctx context.Context, op, msg string, err error) {
	s.metrics.IncStorageFailure(op)
	s.logg.Error(ctx, msg, err)
}

func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return payload, nil
}

func decodeItems(raw []byte) ([]LineItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("stored cart is null")
	}
	var items []LineItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

// sanitize drops entries that would break the one-line-per-product and
// positive-quantity rules, keeping the first occurrence of each product.
func sanitize(items []LineItem) ([]LineItem, int) {
	clean := make([]LineItem, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		clean = append(clean, item)
	}
	return clean, len(items) - len(clean)
}
