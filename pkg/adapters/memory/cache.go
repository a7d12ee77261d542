package memory

import (
	"context"
	"sync"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// Cache implements ports.LayoutCache in memory.
// Safe for concurrent use.
type Cache struct {
	mu   sync.RWMutex
	data map[string]domain.Layout
}

// NewCache creates a new in-memory layout cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]domain.Layout),
	}
}

// Put stores a copy of the layout.
func (c *Cache) Put(ctx context.Context, key string, layout domain.Layout) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = layout.Clone()
	return nil
}

// Get returns a copy so callers can't mutate cached groups.
func (c *Cache) Get(ctx context.Context, key string) (domain.Layout, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	layout, ok := c.data[key]
	if !ok {
		return domain.Layout{}, domain.ErrLayoutNotCached
	}
	return layout.Clone(), nil
}

// Delete removes the layout.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
