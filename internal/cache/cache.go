// Package cache holds the author name-resolution cache shared across fetch
// cycles. Only the resolver writes it; everything else is a reader.
package cache

import (
	"context"
	"sync"
)

// NameCache maps opaque author references to resolved display names.
// Implementations cache positive results only; a missing entry means the
// resolver should try the remote lookup again.
type NameCache interface {
	Get(ctx context.Context, ref string) (string, bool)
	Set(ctx context.Context, ref, name string)
	Reset(ctx context.Context)
}

// memoryCache is the default process-lifetime cache. It grows monotonically
// for the session; no eviction (bounded by organization size).
type memoryCache struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewMemoryCache creates the in-memory cache.
func NewMemoryCache() NameCache {
	return &memoryCache{names: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, ref string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[ref]
	return name, ok
}

func (c *memoryCache) Set(ctx context.Context, ref, name string) {
	if name == "" {
		return
	}
	c.mu.Lock()
	c.names[ref] = name
	c.mu.Unlock()
}

func (c *memoryCache) Reset(ctx context.Context) {
	c.mu.Lock()
	c.names = make(map[string]string)
	c.mu.Unlock()
}
