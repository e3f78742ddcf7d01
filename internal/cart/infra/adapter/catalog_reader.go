package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dmedina-dev/pos-tienda/internal/cart/app"
	catalogapp "github.com/dmedina-dev/pos-tienda/internal/catalog/app"
)

// CatalogServiceReader adapts the catalog service to the cart engine's
// reader port, mapping catalog sentinels onto the cart's.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID int64) (cartapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return cartapp.Product{}, cartapp.ErrProductNotFound
	}
	if err != nil {
		return cartapp.Product{}, err
	}

	return cartapp.Product{
		ID:             p.ID,
		Name:           p.Name,
		PriceCents:     p.PriceCents,
		Stock:          p.Stock,
		TrackInventory: p.TrackInventory,
	}, nil
}
