package app

import (
	"context"
	"time"

	"github.com/dmedina-dev/pos-tienda/internal/report/domain"
)

// LineRecord is one line of a settled sale as stored in its payload.
type LineRecord struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// SaleRecord is a settled sale row with its payload decoded.
type SaleRecord struct {
	ID         int64
	CreatedAt  time.Time
	OperatorID int64
	Method     string
	TotalCents int64
	Lines      []LineRecord
}

// Filter bounds a sale listing. Zero times and a zero operator are open.
type Filter struct {
	From       time.Time
	To         time.Time
	OperatorID int64
}

type SalesReader interface {
	ListSales(ctx context.Context, f Filter) ([]SaleRecord, error)
	CashierTotals(ctx context.Context, from, to time.Time) ([]domain.CashierRow, error)
	DailyTotals(ctx context.Context, from, to time.Time) ([]domain.DayTotal, error)
	PeriodTotals(ctx context.Context, from, to time.Time) (count int64, totalCents int64, err error)
}
