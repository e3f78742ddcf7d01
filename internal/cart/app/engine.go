package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmedina-dev/pos-tienda/internal/cart/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product out of stock")
	ErrStockExceeded   = errors.New("not enough stock")
	ErrInvalidIndex    = errors.New("no cart line at index")
)

// Engine holds the single in-progress cart for one checkout session. All
// mutations either fully apply or leave the cart untouched.
//
// The mutex guards against the same session being driven from two HTTP
// requests at once; there is no cross-session sharing.
type Engine struct {
	catalog CatalogReader

	mu    sync.Mutex
	items []domain.LineItem
}

func NewEngine(catalog CatalogReader) *Engine {
	return &Engine{catalog: catalog}
}

// AddItem appends the product with quantity 1, or increments the existing
// line. Stock checks use the product's live stock.
func (e *Engine) AddItem(ctx context.Context, productID int64) (domain.Cart, error) {
	p, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID)
	if idx < 0 {
		if p.TrackInventory && p.Stock <= 0 {
			return domain.Cart{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		e.items = append(e.items, domain.LineItem{
			ProductID:      p.ID,
			Name:           p.Name,
			PriceCents:     p.PriceCents,
			Quantity:       1,
			TrackInventory: p.TrackInventory,
		})
		return e.snapshotLocked(), nil
	}

	if p.TrackInventory && e.items[idx].Quantity+1 > p.Stock {
		return domain.Cart{}, fmt.Errorf("%w: %s", ErrStockExceeded, p.Name)
	}
	e.items[idx].Quantity++
	return e.snapshotLocked(), nil
}

// ChangeQuantity applies delta to the line at index. A resulting quantity
// below 1 removes the line; exceeding live stock fails with the cart
// unchanged.
func (e *Engine) ChangeQuantity(ctx context.Context, index int, delta int32) (domain.Cart, error) {
	e.mu.Lock()
	if index < 0 || index >= len(e.items) {
		e.mu.Unlock()
		return domain.Cart{}, ErrInvalidIndex
	}
	line := e.items[index]
	e.mu.Unlock()

	next := line.Quantity + delta
	if next < 1 {
		return e.RemoveItem(index)
	}

	if line.TrackInventory {
		// Re-read outside the lock; the index is re-checked after.
		p, err := e.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return domain.Cart{}, err
		}
		if next > p.Stock {
			return domain.Cart{}, fmt.Errorf("%w: %s", ErrStockExceeded, line.Name)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if index >= len(e.items) || e.items[index].ProductID != line.ProductID {
		return domain.Cart{}, ErrInvalidIndex
	}
	e.items[index].Quantity = next
	return e.snapshotLocked(), nil
}

func (e *Engine) RemoveItem(index int) (domain.Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.items) {
		return domain.Cart{}, ErrInvalidIndex
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	return e.snapshotLocked(), nil
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
}

func (e *Engine) TotalCents() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked().TotalCents()
}

// Snapshot returns a copy safe to hand to settlement.
func (e *Engine) Snapshot() domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.Cart {
	items := make([]domain.LineItem, len(e.items))
	copy(items, e.items)
	return domain.Cart{Items: items}
}

func (e *Engine) indexOf(productID int64) int {
	for i, li := range e.items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}
