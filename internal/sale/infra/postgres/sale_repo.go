package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmedina-dev/pos-tienda/internal/sale/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepo struct {
	pool *pgxpool.Pool
}

func NewSaleRepo(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

func (r *SaleRepo) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	payload, err := json.Marshal(sale.Lines)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("encode sale lines: %w", err)
	}

	var reference *string
	if sale.Reference != "" {
		reference = &sale.Reference
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO sales (total_cents, operator_id, lines, tendered_cents, change_cents, method, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		sale.TotalCents, sale.OperatorID, payload, sale.TenderedCents, sale.ChangeCents, sale.Method, reference,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("insert sale: %w", err)
	}
	return sale, nil
}

// DecrementStock matches zero rows when stock no longer covers qty; the
// caller decides what that means.
func (r *SaleRepo) DecrementStock(ctx context.Context, productID int64, qty int32) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1`,
		qty, productID,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
