package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmedina-dev/pos-tienda/internal/report/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrLookup       = errors.New("lookup failed")
)

const topProductsZ = 10

const topProductsReport = 20

type Service struct {
	sales SalesReader
}

func NewService(sales SalesReader) *Service {
	return &Service{sales: sales}
}

func (s *Service) ListSales(ctx context.Context, f Filter) ([]SaleRecord, error) {
	records, err := s.sales.ListSales(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return records, nil
}

// ZReport cuts one business date: totals, share per payment method and the
// best selling products, all read back from the stored payloads.
func (s *Service) ZReport(ctx context.Context, date time.Time) (domain.ZReport, error) {
	day := truncateDay(date)
	records, err := s.sales.ListSales(ctx, Filter{From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		return domain.ZReport{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	report := domain.ZReport{Date: day}
	byMethod := make(map[string]*domain.MethodShare)
	for _, rec := range records {
		report.SaleCount++
		report.TotalCents += rec.TotalCents

		share, ok := byMethod[rec.Method]
		if !ok {
			share = &domain.MethodShare{Method: rec.Method}
			byMethod[rec.Method] = share
		}
		share.SaleCount++
		share.TotalCents += rec.TotalCents
	}
	if report.SaleCount > 0 {
		report.AverageCents = report.TotalCents / report.SaleCount
	}

	for _, share := range byMethod {
		if report.TotalCents > 0 {
			share.Share = float64(share.TotalCents) / float64(report.TotalCents) * 100
		}
		report.Methods = append(report.Methods, *share)
	}
	sort.Slice(report.Methods, func(i, j int) bool {
		if report.Methods[i].TotalCents != report.Methods[j].TotalCents {
			return report.Methods[i].TotalCents > report.Methods[j].TotalCents
		}
		return report.Methods[i].Method < report.Methods[j].Method
	})

	report.TopProducts = rankProducts(records, topProductsZ)
	return report, nil
}

func (s *Service) CashierReport(ctx context.Context, from, to time.Time) ([]domain.CashierRow, error) {
	rows, err := s.sales.CashierTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return rows, nil
}

func (s *Service) ProductReport(ctx context.Context, from, to time.Time) ([]domain.ProductQty, error) {
	records, err := s.sales.ListSales(ctx, Filter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return rankProducts(records, topProductsReport), nil
}

// Comparative sets [from, to) against the equally long window ending at
// from.
func (s *Service) Comparative(ctx context.Context, from, to time.Time) (domain.Comparative, error) {
	if !to.After(from) {
		return domain.Comparative{}, fmt.Errorf("%w: empty period", ErrInvalidInput)
	}

	span := to.Sub(from)
	prevFrom, prevTo := from.Add(-span), from

	curCount, curTotal, err := s.sales.PeriodTotals(ctx, from, to)
	if err != nil {
		return domain.Comparative{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	prevCount, prevTotal, err := s.sales.PeriodTotals(ctx, prevFrom, prevTo)
	if err != nil {
		return domain.Comparative{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	return domain.Comparative{
		Current:       domain.Period{From: from, To: to, SaleCount: curCount, TotalCents: curTotal},
		Previous:      domain.Period{From: prevFrom, To: prevTo, SaleCount: prevCount, TotalCents: prevTotal},
		CountDeltaPct: deltaPct(curCount, prevCount),
		TotalDeltaPct: deltaPct(curTotal, prevTotal),
	}, nil
}

func (s *Service) Trends(ctx context.Context, days int) (domain.Trends, error) {
	if days < 1 {
		return domain.Trends{}, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	to := truncateDay(time.Now()).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)

	rows, err := s.sales.DailyTotals(ctx, from, to)
	if err != nil {
		return domain.Trends{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	trends := domain.Trends{Days: rows}
	for _, day := range rows {
		trends.TotalCents += day.TotalCents
		if day.TotalCents > trends.BestDay.TotalCents {
			trends.BestDay = day
		}
	}
	trends.DailyAverageCents = trends.TotalCents / int64(days)
	return trends, nil
}

func rankProducts(records []SaleRecord, limit int) []domain.ProductQty {
	byProduct := make(map[int64]*domain.ProductQty)
	for _, rec := range records {
		for _, line := range rec.Lines {
			agg, ok := byProduct[line.ProductID]
			if !ok {
				agg = &domain.ProductQty{ProductID: line.ProductID, Name: line.Name}
				byProduct[line.ProductID] = agg
			}
			agg.Quantity += int64(line.Quantity)
			agg.TotalCents += line.PriceCents * int64(line.Quantity)
		}
	}

	ranked := make([]domain.ProductQty, 0, len(byProduct))
	for _, agg := range byProduct {
		ranked = append(ranked, *agg)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func deltaPct(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
