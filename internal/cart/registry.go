package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/octocat-supply/storefront/pkg/kv"
	"github.com/octocat-supply/storefront/pkg/logger"
	"github.com/octocat-supply/storefront/pkg/metrics"
)

const (
	DefaultIdleTTL     = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// RegistryConfig configures the carts a Registry opens.
type RegistryConfig struct {
	Key string
	// MaxBytes of 0 applies DefaultMaxBytes; a negative value disables the quota.
	MaxBytes int64
	Pricing  Pricing
	// IdleTTL of 0 applies DefaultIdleTTL; a negative value keeps idle carts.
	IdleTTL time.Duration
	// MaxSessions of 0 applies DefaultMaxSessions; a negative value removes the cap.
	MaxSessions int
	Logger      *logger.Logger
	Metrics     *metrics.CartMetrics
}

type session struct {
	cart     *Cart
	lastUsed time.Time
}

// Registry hands out one Cart per session, loading it from the store the
// first time the session is seen. Carts idle for longer than IdleTTL, and
// the least recently used carts beyond MaxSessions, are dropped; the next
// request for such a session reloads it from the store.
type Registry struct {
	mu        sync.Mutex
	store     kv.Store
	cfg       RegistryConfig
	sessions  map[string]*session
	lastSweep time.Time
	loads     singleflight.Group
	now       func() time.Time
}

func NewRegistry(store kv.Store, cfg RegistryConfig) *Registry {
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Pricing == (Pricing{}) {
		cfg.Pricing = DefaultPricing()
	}
	if cfg.IdleTTL == 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.MaxSessions == 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Registry{
		store:    store,
		cfg:      cfg,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// SessionKey is the storage key of a session's cart.
func SessionKey(key, sessionID string) string {
	return key + ":" + sessionID
}

// Open returns the cart for sessionID, loading it on first use. The load is
// not tied to ctx's cancellation, so an abandoned request cannot leave the
// session with an empty cart. A failed backend read is returned and nothing
// is cached; the next Open tries again.
func (r *Registry) Open(ctx context.Context, sessionID string) (*Cart, error) {
	sessionID = strings.TrimSpace(sessionID)
	if c := r.lookup(sessionID); c != nil {
		return c, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.loads.Do(sessionID, func() (any, error) {
		if c := r.lookup(sessionID); c != nil {
			return c, nil
		}
		storage := NewStorage(r.store, SessionKey(r.cfg.Key, sessionID),
			WithMaxBytes(r.cfg.MaxBytes),
			WithStorageLogger(r.cfg.Logger),
			WithStorageMetrics(r.cfg.Metrics),
		)
		items, err := storage.Read(loadCtx)
		if err != nil {
			return nil, err
		}
		c := newWithItems(storage, items, WithPricing(r.cfg.Pricing), WithMetrics(r.cfg.Metrics))
		r.insert(sessionID, c)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cart: open session cart: %w", err)
	}
	return v.(*Cart), nil
}

func (r *Registry) lookup(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	s.lastUsed = r.now()
	return s.cart
}

func (r *Registry) insert(sessionID string, c *Cart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sessions[sessionID] = &session{cart: c, lastUsed: now}
	r.evictLocked(now)
	r.cfg.Metrics.SetOpenSessions(len(r.sessions))
}

func (r *Registry) evictLocked(now time.Time) {
	if ttl := r.cfg.IdleTTL; ttl > 0 && now.Sub(r.lastSweep) >= ttl/2 {
		for id, s := range r.sessions {
			if now.Sub(s.lastUsed) > ttl {
				delete(r.sessions, id)
			}
		}
		r.lastSweep = now
	}

	if r.cfg.MaxSessions < 0 {
		return
	}
	for len(r.sessions) > r.cfg.MaxSessions {
		var oldestID string
		var oldest time.Time
		for id, s := range r.sessions {
			if oldestID == "" || s.lastUsed.Before(oldest) {
				oldestID, oldest = id, s.lastUsed
			}
		}
		delete(r.sessions, oldestID)
	}
}

// Len reports how many sessions currently hold a cart.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
