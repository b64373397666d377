package marketdata

import (
	"context"
	"sync"
	"time"

	"market-analytics/internal/model"
)

// Cache stores candle series under string keys with an expiry chosen by
// the caller. It is an injected dependency, never a process-global map,
// so tests stay isolated and nodes can share a Redis-backed instance.
type Cache interface {
	// Get returns the cached candles for key. ok is false on miss or
	// after expiry.
	Get(ctx context.Context, key string) ([]model.Candle, bool)

	// Set stores candles under key for ttl.
	Set(ctx context.Context, key string, candles []model.Candle, ttl time.Duration)
}

// TTLPolicy picks the cache lifetime per asset class. Faster-moving
// asset classes get shorter TTLs; the defaults are the portal's
// reference constants.
type TTLPolicy struct {
	Default     time.Duration // everything else
	Metals      time.Duration // XAUUSD, XAGUSD
	Commodities time.Duration // USOIL
}

// DefaultTTLPolicy returns the reference TTLs: 20s default, 15s for
// precious metals, 5s for commodities.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Default:     20 * time.Second,
		Metals:      15 * time.Second,
		Commodities: 5 * time.Second,
	}
}

// For returns the TTL for a symbol.
func (p TTLPolicy) For(symbol string) time.Duration {
	switch symbol {
	case "XAUUSD", "XAGUSD":
		return p.Metals
	case "USOIL":
		return p.Commodities
	}
	return p.Default
}

type memoryEntry struct {
	candles   []model.Candle
	expiresAt time.Time
}

// MemoryCache is a single-node Cache. The clock is injectable so expiry
// is testable without sleeping.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock overrides the cache's time source. Test hook.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]model.Candle, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.candles, true
}

func (c *MemoryCache) Set(_ context.Context, key string, candles []model.Candle, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{candles: candles, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
