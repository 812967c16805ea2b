package extract

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct sources a Cache keeps.
const DefaultCacheSize = 128

// Cache memoises Extract by source text. A nil *Cache extracts every time.
type Cache struct {
	entries *lru.Cache[string, Extraction]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache creates a cache holding up to size extractions.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, Extraction](size)
	if err != nil {
		return nil, fmt.Errorf("create extraction cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Extract returns the cached extraction for source, computing it on a miss.
func (c *Cache) Extract(source string) Extraction {
	if c == nil {
		return Extract(source)
	}
	if ext, ok := c.entries.Get(source); ok {
		c.hits.Add(1)
		return ext
	}
	c.misses.Add(1)
	ext := Extract(source)
	c.entries.Add(source, ext)
	return ext
}

// Stats returns the number of hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached extractions.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
