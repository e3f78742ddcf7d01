package app

import "context"

// CatalogReader is the engine's window into live product state. Every
// mutation re-reads the product so stock checks run against current stock,
// never against the snapshot taken when the line was added.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
}

type Product struct {
	ID             int64
	Name           string
	PriceCents     int64
	Stock          int32
	TrackInventory bool
}
