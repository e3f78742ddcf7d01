package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
)

// MemoryCache is the default single-process snapshot cache.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	products []domain.Product
	storedAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.products == nil || c.now().Sub(c.storedAt) > c.ttl {
		return nil, ErrCacheMiss
	}

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *MemoryCache) Set(ctx context.Context, products []domain.Product) error {
	stored := make([]domain.Product, len(products))
	copy(stored, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = stored
	c.storedAt = c.now()
	return nil
}
