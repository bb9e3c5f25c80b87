package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the in-process expiring store shared by the API clients.
// Entries are advisory: staleness up to the TTL is acceptable for order,
// contact and catalog reads.
type Cache struct {
	store *gocache.Cache
}

// New returns a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}
