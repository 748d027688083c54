package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dogumharitan777/astro-api/internal/ports/cache"
)

type entry struct {
	value   string
	expires time.Time
}

// Cache in-memory реализация cache.Cache с TTL, когда Redis не подключён.
// При переполнении сначала выбрасываются просроченные ключи, затем любой.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewCache создаёт кэш не более чем на maxEntries ключей
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

var _ cache.Cache = (*Cache)(nil)

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("key %s: %w", key, cache.ErrNotFound)
	}
	if c.expired(e) {
		c.mu.Lock()
		// ключ могли перезаписать между RUnlock и Lock
		if cur, ok := c.entries[key]; ok && c.expired(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", fmt.Errorf("key %s: %w", key, cache.ErrNotFound)
	}

	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict()
	}

	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}
	c.entries[key] = entry{value: value, expires: expires}
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Ping(context.Context) error {
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

// Len число ключей, включая ещё не вычищенные просроченные
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) expired(e entry) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

// evict вызывается под c.mu
func (c *Cache) evict() {
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
