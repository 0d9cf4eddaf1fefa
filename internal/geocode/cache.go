package geocode

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pepiancookingclass/tasty/internal/geo"
)

// DefaultCacheSize bounds the resolution cache. Distinct delivery addresses
// per deployment window are far below this in practice.
const DefaultCacheSize = 4096

// Cache memoizes normalized query strings to their resolved coordinate for
// the life of the process. Only successful resolutions are stored, so a hit
// always means a previously resolved query. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, geo.Coordinate]
}

// NewCache creates a bounded LRU cache. Sizes < 1 fall back to the default.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	// lru.New only errors on a non-positive size, which is guarded above.
	entries, _ := lru.New[string, geo.Coordinate](size)
	return &Cache{entries: entries}
}

// Get looks up a query. The key is normalized before lookup.
func (c *Cache) Get(query string) (geo.Coordinate, bool) {
	return c.entries.Get(NormalizeQuery(query))
}

// Put stores a resolved coordinate under the normalized query. Concurrent
// writers for the same query write the same value, so last-write-wins is
// harmless.
func (c *Cache) Put(query string, coord geo.Coordinate) {
	c.entries.Add(NormalizeQuery(query), coord)
}

// Len returns the number of cached resolutions.
func (c *Cache) Len() int {
	return c.entries.Len()
}
