package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmedina-dev/pos-tienda/internal/report/app"
	"github.com/dmedina-dev/pos-tienda/internal/report/domain"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) ListSales(ctx context.Context, f app.Filter) ([]app.SaleRecord, error) {
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if f.OperatorID != 0 {
		args = append(args, f.OperatorID)
		conds = append(conds, fmt.Sprintf("operator_id = $%d", len(args)))
	}

	query := `SELECT id, created_at, operator_id, method, total_cents, lines FROM sales`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var records []app.SaleRecord
	for rows.Next() {
		var (
			rec     app.SaleRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.OperatorID, &rec.Method, &rec.TotalCents, &payload); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Lines); err != nil {
			return nil, fmt.Errorf("decode sale %d payload: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ReportRepo) CashierTotals(ctx context.Context, from, to time.Time) ([]domain.CashierRow, error) {
	const query = `
		SELECT operator_id,
		       COUNT(*),
		       COALESCE(SUM(total_cents), 0),
		       COALESCE(AVG(total_cents), 0)::BIGINT
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY operator_id
		ORDER BY SUM(total_cents) DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("cashier totals: %w", err)
	}
	defer rows.Close()

	var out []domain.CashierRow
	for rows.Next() {
		var row domain.CashierRow
		if err := rows.Scan(&row.OperatorID, &row.SaleCount, &row.TotalCents, &row.AverageCents); err != nil {
			return nil, fmt.Errorf("scan cashier row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) DailyTotals(ctx context.Context, from, to time.Time) ([]domain.DayTotal, error) {
	const query = `
		SELECT DATE_TRUNC('day', created_at) AS day,
		       COUNT(*),
		       COALESCE(SUM(total_cents), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []domain.DayTotal
	for rows.Next() {
		var row domain.DayTotal
		if err := rows.Scan(&row.Date, &row.SaleCount, &row.TotalCents); err != nil {
			return nil, fmt.Errorf("scan day row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) PeriodTotals(ctx context.Context, from, to time.Time) (int64, int64, error) {
	const query = `
		SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`

	var count, total int64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count, &total); err != nil {
		return 0, 0, fmt.Errorf("period totals: %w", err)
	}
	return count, total, nil
}
