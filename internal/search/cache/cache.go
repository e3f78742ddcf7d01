package cache

import (
	"context"
	"errors"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
)

// SnapshotCache holds one time-bounded copy of the product catalog for
// predictive search. Invalidation is purely by TTL; product writes do not
// flush it, so results may lag by up to one TTL.
type SnapshotCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
}

var ErrCacheMiss = errors.New("cache miss")
