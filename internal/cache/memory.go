package cache

import (
	"context"
	"sync"
	"time"

	"github.com/biznexus-ai/backend/internal/domain"
)

type memoryEntry struct {
	resp    domain.QueryResponse
	expires time.Time
}

// MemoryResponseCache is a process-local TTL cache used when Redis is not
// configured. Expired entries are dropped lazily on read and swept by a
// background ticker.
type MemoryResponseCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]memoryEntry
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryResponseCache(ttl time.Duration) *MemoryResponseCache {
	if ttl <= 0 {
		ttl = defaultResponseTTL
	}
	c := &MemoryResponseCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Close stops the background sweeper. Safe to call more than once.
func (c *MemoryResponseCache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *MemoryResponseCache) Get(_ context.Context, query string) (*domain.QueryResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[buildResponseKey(query)]
	if !ok || time.Now().After(entry.expires) {
		return nil, false, nil
	}
	resp := entry.resp
	return &resp, true, nil
}

func (c *MemoryResponseCache) Set(_ context.Context, query string, resp *domain.QueryResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[buildResponseKey(query)] = memoryEntry{
		resp:    *resp,
		expires: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryResponseCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expires) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
