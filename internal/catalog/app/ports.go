package app

import (
	"context"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	LowStock(ctx context.Context, threshold int32, limit int) ([]domain.Product, error)
	StockStats(ctx context.Context) (domain.StockStats, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, name string) (domain.Category, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
	ProductCount(ctx context.Context, id int64) (int64, error)
}
