package app

import (
	"context"

	"github.com/dmedina-dev/pos-tienda/internal/sale/domain"
)

type SaleRepo interface {
	// CreateSale persists the sale row and returns it with id and timestamp
	// filled in.
	CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)

	// DecrementStock applies a guarded decrement and reports whether a row
	// matched; false means the stock was already below qty.
	DecrementStock(ctx context.Context, productID int64, qty int32) (bool, error)
}

// Counter is satisfied by prometheus counters.
type Counter interface {
	Inc()
}
