package analyzer

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements CacheStore using in-memory storage
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, handle string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[handle]
	if !exists {
		return nil, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, handle)
		return nil, nil
	}

	return entry.payload, nil
}

func (c *MemoryCache) Set(_ context.Context, handle string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[handle] = &cacheEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
