package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
	"github.com/dmedina-dev/pos-tienda/internal/search/cache"
)

type fakeCatalog struct {
	products []domain.Product
	calls    int
	err      error
}

func (f *fakeCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(products []domain.Product) (*Service, *fakeCatalog) {
	catalog := &fakeCatalog{products: products}
	return NewService(catalog, cache.NewMemoryCache(time.Minute), discardLogger()), catalog
}

func TestTierConstants(t *testing.T) {
	assert.Equal(t, 1000, TierBarcodeExact)
	assert.Equal(t, 800, TierBarcodePartial)
	assert.Equal(t, 600, TierNameExact)
	assert.Equal(t, 400, TierNamePrefix)
	assert.Equal(t, 250, TierNameContains)
	assert.Equal(t, 100, TierCategoryContains)
	assert.Equal(t, 25, BonusInStock)
	assert.Equal(t, 200, PenaltyNoStock)
}

func TestScoreTiers(t *testing.T) {
	p := domain.Product{
		Barcode:      "7501031311309",
		Name:         "Coca Cola 600ml",
		CategoryName: "Bebidas",
	}

	assert.Equal(t, TierBarcodeExact, Score(p, "7501031311309"))
	assert.Equal(t, TierBarcodePartial, Score(p, "750103"))
	assert.Equal(t, TierNameExact, Score(p, "coca cola 600ml"))
	assert.Equal(t, TierNamePrefix, Score(p, "coca"))
	assert.Equal(t, TierNameContains, Score(p, "cola 600"))
	assert.Equal(t, TierCategoryContains, Score(p, "bebi"))
	assert.Equal(t, 0, Score(p, "cerveza"))
}

func TestScoreStockAdjustment(t *testing.T) {
	inStock := domain.Product{Name: "Coca Cola", Stock: 12, TrackInventory: true}
	empty := domain.Product{Name: "Cokie Choco", Stock: 0, TrackInventory: true}
	untracked := domain.Product{Name: "Copia Llave", TrackInventory: false}

	assert.Equal(t, TierNamePrefix+BonusInStock, Score(inStock, "co"))
	assert.Equal(t, TierNamePrefix-PenaltyNoStock, Score(empty, "co"))
	assert.Equal(t, TierNamePrefix, Score(untracked, "co"))

	// No text match means no score at all, regardless of stock.
	assert.Equal(t, 0, Score(inStock, "zz"))
}

func TestSearchStockBreaksTie(t *testing.T) {
	svc, _ := newTestService([]domain.Product{
		{ID: 1, Name: "Cokie Choco", Stock: 0, TrackInventory: true},
		{ID: 2, Name: "Coca Cola", Stock: 8, TrackInventory: true},
	})

	results, err := svc.Search(context.Background(), "co")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Coca Cola", results[0].Product.Name)
	assert.Equal(t, "Cokie Choco", results[1].Product.Name)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchNarrowerQueryFilters(t *testing.T) {
	svc, _ := newTestService([]domain.Product{
		{ID: 1, Name: "Cokie Choco", Stock: 0, TrackInventory: true},
		{ID: 2, Name: "Coca Cola", Stock: 8, TrackInventory: true},
	})

	results, err := svc.Search(context.Background(), "cok")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cokie Choco", results[0].Product.Name)
}

func TestSearchShortQuery(t *testing.T) {
	svc, catalog := newTestService([]domain.Product{{ID: 1, Name: "Agua"}})

	for _, q := range []string{"", " ", "a", "  a  "} {
		results, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", q)
	}
	assert.Zero(t, catalog.calls)
}

func TestSearchCapsResults(t *testing.T) {
	var products []domain.Product
	for i := 0; i < 20; i++ {
		products = append(products, domain.Product{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Refresco %02d", i),
		})
	}
	svc, _ := newTestService(products)

	results, err := svc.Search(context.Background(), "refresco")
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
	// Tie on score, so ordering falls back to name.
	assert.Equal(t, "Refresco 00", results[0].Product.Name)
}

func TestSearchNameBreaksScoreTie(t *testing.T) {
	svc, _ := newTestService([]domain.Product{
		{ID: 1, Name: "Sabritas Original"},
		{ID: 2, Name: "Sabritas Adobadas"},
	})

	results, err := svc.Search(context.Background(), "sabritas")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Sabritas Adobadas", results[0].Product.Name)
}

func TestSearchUsesSnapshotCache(t *testing.T) {
	svc, catalog := newTestService([]domain.Product{{ID: 1, Name: "Coca Cola"}})

	for i := 0; i < 3; i++ {
		_, err := svc.Search(context.Background(), "coca")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, catalog.calls)
}

func TestSearchCatalogError(t *testing.T) {
	catalog := &fakeCatalog{err: fmt.Errorf("connection reset")}
	svc := NewService(catalog, cache.NewMemoryCache(time.Minute), discardLogger())

	_, err := svc.Search(context.Background(), "coca")
	require.Error(t, err)
}

func TestSearchExcludesNegativeScores(t *testing.T) {
	// A category-tier match on an empty shelf would score below zero and
	// must not appear.
	svc, _ := newTestService([]domain.Product{
		{ID: 1, Name: "Topo Chico", CategoryName: "Bebidas", Stock: 0, TrackInventory: true},
	})

	results, err := svc.Search(context.Background(), "bebi")
	require.NoError(t, err)
	assert.Empty(t, results)
}
