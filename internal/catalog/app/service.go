package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateBarcode = errors.New("barcode already in use")
	ErrDuplicateName    = errors.New("name already in use")
	ErrCategoryInUse    = errors.New("category has associated products")

	// ErrLookup wraps datastore failures on the read side. Callers treat it
	// as retryable by the operator, not fatal.
	ErrLookup = errors.New("catalog lookup failed")
)

const lowStockThreshold = 10

type Service struct {
	products   ProductRepo
	categories CategoryRepo
}

func NewService(products ProductRepo, categories CategoryRepo) *Service {
	return &Service{
		products:   products,
		categories: categories,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p, err := s.products.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return domain.Product{}, err
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Barcode = strings.TrimSpace(p.Barcode)

	if p.Name == "" || p.PriceCents < 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.products.Create(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Barcode = strings.TrimSpace(p.Barcode)

	if p.ID <= 0 || p.Name == "" || p.PriceCents < 0 || p.Stock < 0 {
		return ErrInvalidInput
	}
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.products.Delete(ctx, id)
}

func (s *Service) LowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	out, err := s.products.LowStock(ctx, lowStockThreshold, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return out, nil
}

func (s *Service) StockStats(ctx context.Context) (domain.StockStats, error) {
	stats, err := s.products.StockStats(ctx)
	if err != nil {
		return domain.StockStats{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return stats, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrInvalidInput
	}
	return s.categories.Create(ctx, name)
}

func (s *Service) RenameCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return ErrInvalidInput
	}
	return s.categories.Rename(ctx, id, name)
}

// DeleteCategory refuses to delete a category that still has products.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}

	n, err := s.categories.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.categories.Delete(ctx, id)
}
