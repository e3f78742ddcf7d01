package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmedina-dev/pos-tienda/internal/sale/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSettlement means the sale row could not be persisted. The caller
	// keeps the cart so the operator can retry.
	ErrSettlement = errors.New("sale could not be recorded")
)

type Service struct {
	repo SaleRepo
	log  *slog.Logger

	settled Counter
	skipped Counter

	maxConcurrent int
}

func NewService(repo SaleRepo, log *slog.Logger, settled, skipped Counter) *Service {
	return &Service{
		repo:          repo,
		log:           log,
		settled:       settled,
		skipped:       skipped,
		maxConcurrent: 10,
	}
}

// Settle persists the sale, then decrements stock per tracked line.
//
// The sale row is the durable source of truth: each decrement is guarded
// (only applies while stock covers the quantity) and independent, and a
// shortfall is logged, never rolled back. Stock can drift under concurrent
// settlements; the sale record cannot.
func (s *Service) Settle(ctx context.Context, operatorID int64, lines []domain.SaleLine, pay domain.Payment) (domain.Sale, error) {
	if len(lines) == 0 {
		return domain.Sale{}, ErrEmptyCart
	}

	var total int64
	for _, l := range lines {
		total += l.SubtotalCents()
	}

	sale := domain.Sale{
		TotalCents:    total,
		OperatorID:    operatorID,
		Lines:         lines,
		TenderedCents: pay.TenderedCents,
		ChangeCents:   pay.ChangeCents,
		Method:        pay.Method,
		Reference:     pay.Reference,
	}

	created, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("%w: %v", ErrSettlement, err)
	}

	s.decrementStocks(ctx, created)

	if s.settled != nil {
		s.settled.Inc()
	}
	s.log.Info("sale settled",
		slog.Int64("sale_id", created.ID),
		slog.Int64("total_cents", created.TotalCents),
		slog.Int64("operator_id", operatorID),
		slog.String("method", created.Method),
	)
	return created, nil
}

// decrementStocks is best-effort by contract: failures are warnings, the
// settled sale stands.
func (s *Service) decrementStocks(ctx context.Context, sale domain.Sale) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, line := range sale.Lines {
		if !line.TrackInventory {
			continue
		}
		line := line
		g.Go(func() error {
			ok, err := s.repo.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				s.log.Warn("stock decrement failed",
					slog.Int64("sale_id", sale.ID),
					slog.Int64("product_id", line.ProductID),
					slog.Any("err", err),
				)
				return nil
			}
			if !ok {
				if s.skipped != nil {
					s.skipped.Inc()
				}
				s.log.Warn("insufficient stock at decrement time, sale kept",
					slog.Int64("sale_id", sale.ID),
					slog.Int64("product_id", line.ProductID),
					slog.Int("quantity", int(line.Quantity)),
				)
			}
			return nil
		})
	}

	_ = g.Wait()
}
