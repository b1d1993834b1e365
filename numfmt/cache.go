package numfmt

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	f   *NumberFormat
	err error
}

// Cache memoizes parsed format codes. Concurrent first requests for the
// same code share one parse. Failed parses are remembered as well.
// The zero value is ready to use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the parsed form of code.
func (c *Cache) Get(code string) (*NumberFormat, error) {
	c.mu.RLock()
	e, ok := c.entries[code]
	c.mu.RUnlock()
	if ok {
		return e.f, e.err
	}

	v, _, _ := c.group.Do(code, func() (any, error) {
		f, err := Parse(code)
		e := cacheEntry{f: f, err: err}
		c.mu.Lock()
		if c.entries == nil {
			c.entries = make(map[string]cacheEntry)
		}
		c.entries[code] = e
		c.mu.Unlock()
		return e, nil
	})
	e = v.(cacheEntry)
	return e.f, e.err
}

// Len returns the number of cached codes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Format renders v with the cached form of code.
func (c *Cache) Format(code string, v Value, opts Options) (Result, error) {
	f, err := c.Get(code)
	if err != nil {
		return Result{}, err
	}
	return f.Format(v, opts)
}
