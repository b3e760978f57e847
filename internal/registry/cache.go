package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache memoizes parse results keyed by registry kind and content hash.
// Parsing is pure, so a hit returns exactly what a fresh parse would.
type Cache struct {
	c *cache.Cache
}

// NewCache creates a parse cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{c: cache.New(ttl, 2*ttl)}
}

// Parse returns the parsed rows for text, parsing on a miss. The returned
// slice is a copy and may be modified by the caller.
func (c *Cache) Parse(kind Kind, text string) []Row {
	key := cacheKey(kind, text)
	if v, ok := c.c.Get(key); ok {
		if rows, ok := v.([]Row); ok {
			return slices.Clone(rows)
		}
	}

	rows := Parse(kind, text)
	c.c.Set(key, rows, cache.DefaultExpiration)
	return slices.Clone(rows)
}

// Len returns the number of memoized registries.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

func cacheKey(kind Kind, text string) string {
	sum := sha256.Sum256([]byte(text))
	return string(kind) + ":" + hex.EncodeToString(sum[:])
}
