package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
	"github.com/dmedina-dev/pos-tienda/internal/search/cache"
)

// Match tiers, strongest first. The stock adjustments are deliberately
// small against the tier spread: a strong text match on an empty shelf can
// still outrank a weak match with stock. Tunable, and pinned by tests.
const (
	TierBarcodeExact     = 1000
	TierBarcodePartial   = 800
	TierNameExact        = 600
	TierNamePrefix       = 400
	TierNameContains     = 250
	TierCategoryContains = 100

	BonusInStock   = 25
	PenaltyNoStock = 200
)

// Queries shorter than this return nothing; one character matches half the
// catalog.
const MinQueryLen = 2

// MaxResults caps the suggestion list shown at the register.
const MaxResults = 8

type CatalogReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ScoredProduct struct {
	Product domain.Product
	Score   int
}

type Service struct {
	catalog CatalogReader
	cache   cache.SnapshotCache
	log     *slog.Logger
}

func NewService(catalog CatalogReader, snapshots cache.SnapshotCache, log *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		cache:   snapshots,
		log:     log,
	}
}

// Search ranks the catalog snapshot against a free-text query. The order
// is total: score descending, ties broken by name ascending.
func (s *Service) Search(ctx context.Context, query string) ([]ScoredProduct, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLen {
		return nil, nil
	}

	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		if score := Score(p, query); score > 0 {
			scored = append(scored, ScoredProduct{Product: p, Score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.Name < scored[j].Product.Name
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored, nil
}

func (s *Service) snapshot(ctx context.Context) ([]domain.Product, error) {
	products, err := s.cache.Get(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// A broken cache degrades to a direct read.
		s.log.Warn("snapshot cache read failed", slog.Any("err", err))
	}

	products, err = s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, products); err != nil {
		s.log.Warn("snapshot cache write failed", slog.Any("err", err))
	}
	return products, nil
}

// Score returns the adjusted rank of one product for a query, 0 when it
// does not match. The stock adjustment only applies on top of a text
// match; stock alone never surfaces a product.
func Score(p domain.Product, query string) int {
	q := strings.ToLower(query)
	name := strings.ToLower(p.Name)

	var base int
	switch {
	case p.Barcode != "" && strings.EqualFold(p.Barcode, query):
		base = TierBarcodeExact
	case p.Barcode != "" && strings.Contains(strings.ToLower(p.Barcode), q):
		base = TierBarcodePartial
	case name == q:
		base = TierNameExact
	case strings.HasPrefix(name, q):
		base = TierNamePrefix
	case strings.Contains(name, q):
		base = TierNameContains
	case p.CategoryName != "" && strings.Contains(strings.ToLower(p.CategoryName), q):
		base = TierCategoryContains
	default:
		return 0
	}

	if p.TrackInventory {
		if p.Stock > 0 {
			base += BonusInStock
		} else {
			base -= PenaltyNoStock
		}
	}
	return base
}
