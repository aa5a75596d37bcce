package query

import (
	"sync"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
)

// PageCache holds the last-fetched page per exact query tuple. Entries are
// created on first fetch, replaced on refetch, and patched on mutation
// success; they are never expired.
type PageCache struct {
	mu    sync.RWMutex
	pages map[catalog.PageQuery]catalog.ProductPage
}

func NewPageCache() *PageCache {
	return &PageCache{pages: make(map[catalog.PageQuery]catalog.ProductPage)}
}

// Get returns the cached page for the key, if present.
func (c *PageCache) Get(key catalog.PageQuery) (catalog.ProductPage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page, ok := c.pages[key]
	return page, ok
}

// Put stores the page under the key, replacing any previous entry. Writes
// are last-write-wins per key.
func (c *PageCache) Put(key catalog.PageQuery, page catalog.ProductPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = page
}

// Keys returns the currently cached query tuples.
func (c *PageCache) Keys() []catalog.PageQuery {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]catalog.PageQuery, 0, len(c.pages))
	for key := range c.pages {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
