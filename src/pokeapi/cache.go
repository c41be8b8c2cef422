package pokeapi

import (
	"sync"
	"time"
)

type cachedResponse struct {
	body      []byte
	timestamp time.Time
}

// Cache keeps raw response bodies keyed by URL for a fixed duration.
type Cache struct {
	cacheDuration time.Duration
	now           func() time.Time

	cache      map[string]cachedResponse
	cacheMutex sync.RWMutex
}

func NewCache(cacheDuration time.Duration) *Cache {
	return &Cache{
		cacheDuration: cacheDuration,
		now:           time.Now,
		cache:         make(map[string]cachedResponse),
	}
}

func (c *Cache) Get(url string) ([]byte, bool) {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()
	result, cached := c.cache[url]
	if !cached || c.now().Sub(result.timestamp) >= c.cacheDuration {
		return nil, false
	}
	return result.body, true
}

func (c *Cache) Set(url string, body []byte) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache[url] = cachedResponse{
		body:      body,
		timestamp: c.now(),
	}
	c.evictExpired()
}

func (c *Cache) Len() int {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()
	return len(c.cache)
}

// caller holds the write lock
func (c *Cache) evictExpired() {
	now := c.now()
	for url, entry := range c.cache {
		if now.Sub(entry.timestamp) >= c.cacheDuration {
			delete(c.cache, url)
		}
	}
}
