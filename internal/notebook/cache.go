package notebook

import (
	"sync"

	"github.com/tablelab/tablelab/internal/database"
)

// FetchFunc retrieves the complete contents of a table.
type FetchFunc func(table string) (*database.Frame, error)

// TableCache holds the full frame for at most one table, tagged with
// the table name it was fetched for. A selection change invalidates
// the tag/frame pair before the next GetOrFetch.
type TableCache struct {
	fetch   FetchFunc
	table   string
	frame   *database.Frame
	fetches int
	mu      sync.Mutex
}

// NewTableCache creates a cache backed by the given fetch function.
func NewTableCache(fetch FetchFunc) *TableCache {
	return &TableCache{fetch: fetch}
}

// GetOrFetch returns the cached frame when it is tagged with table,
// fetching and storing it otherwise. A fetch failure leaves the cache
// empty and propagates the error.
func (c *TableCache) GetOrFetch(table string) (*database.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame != nil && c.table == table {
		return c.frame, nil
	}

	frame, err := c.fetch(table)
	if err != nil {
		c.table = ""
		c.frame = nil
		return nil, err
	}

	c.table = table
	c.frame = frame
	c.fetches++
	return frame, nil
}

// Invalidate discards the stored tag/frame pair.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = ""
	c.frame = nil
}

// Table returns the table the cached frame is tagged with, or "" when
// the cache is empty.
func (c *TableCache) Table() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return ""
	}
	return c.table
}

// Fetches returns how many fetches the cache has performed.
func (c *TableCache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}
