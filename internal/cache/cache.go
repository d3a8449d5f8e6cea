package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/openjus/processo-engine/internal/models"
)

// Cache stores canonical case records keyed by case number. Only
// single-identifier lookups are ever written here; free-text result
// sets are unstable and identifier-less, so they bypass the cache.
type Cache interface {
	Get(key string) (*models.CacheEntry, bool)
	Set(key string, record models.CanonicalCaseRecord, tribunal string) error
	Delete(key string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

type TTLCache struct {
	cache   *gocache.Cache
	mu      sync.RWMutex
	stats   CacheStats
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a TTL cache with lazy expiry; the go-cache janitor
// sweep is a resource-bounding optimization on top of it.
func NewCache(maxSize int, ttl time.Duration) Cache {
	return &TTLCache{
		cache:   gocache.New(ttl, ttl*2),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the entry for the key. An entry past its expiry is a
// miss, even if the janitor has not collected it yet.
func (c *TTLCache) Get(key string) (*models.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = c.now()

	if data, found := c.cache.Get(normalizeKey(key)); found {
		if entry, ok := data.(*models.CacheEntry); ok && !entry.Expired(c.now()) {
			c.stats.Hits++
			return entry, true
		}
	}

	c.stats.Misses++
	return nil, false
}

// Set upserts the record under the key. Concurrent writes for the same
// key are last-write-wins; the entry is replaced whole, never merged.
func (c *TTLCache) Set(key string, record models.CanonicalCaseRecord, tribunal string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	fetched := c.now()
	entry := &models.CacheEntry{
		Key:       normalizeKey(key),
		Record:    record,
		Tribunal:  tribunal,
		FetchedAt: fetched,
		ExpiresAt: fetched.Add(c.ttl),
	}

	c.cache.Set(entry.Key, entry, gocache.DefaultExpiration)
	return nil
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(normalizeKey(key))
}

func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{}
}

func (c *TTLCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Size = c.cache.ItemCount()
	return stats
}

func (c *TTLCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestExpiration int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldestExpiration {
			oldestKey = key
			oldestExpiration = item.Expiration
		}
	}

	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}

// normalizeKey strips formatting from the case identifier so the
// punctuated and bare-digit spellings of one case share an entry.
func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return strings.TrimSpace(key)
	}
	return fmt.Sprintf("case:%s", b.String())
}
