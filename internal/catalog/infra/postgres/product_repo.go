package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/app"
	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `p.id, p.barcode, p.name, p.price_cents, p.category_id, c.name, p.stock, p.track_inventory`

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (barcode, name, price_cents, category_id, stock, track_inventory)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		nullIfEmpty(p.Barcode), p.Name, p.PriceCents, nullIfZero(p.CategoryID), p.Stock, p.TrackInventory,
	)

	if err := row.Scan(&p.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, app.ErrDuplicateBarcode
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET barcode = $1, name = $2, price_cents = $3, category_id = $4, stock = $5, track_inventory = $6
		WHERE id = $7`,
		nullIfEmpty(p.Barcode), p.Name, p.PriceCents, nullIfZero(p.CategoryID), p.Stock, p.TrackInventory, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return app.ErrDuplicateBarcode
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepo) LowStock(ctx context.Context, threshold int32, limit int) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.track_inventory AND p.stock <= $1
		ORDER BY p.stock ASC
		LIMIT $2`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepo) StockStats(ctx context.Context) (domain.StockStats, error) {
	var stats domain.StockStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE track_inventory),
			COUNT(*) FILTER (WHERE track_inventory AND stock <= 10),
			COUNT(*) FILTER (WHERE track_inventory AND stock <= 5),
			COUNT(*) FILTER (WHERE track_inventory AND stock = 0)
		FROM products`,
	).Scan(&stats.TotalProducts, &stats.Tracked, &stats.LowStock, &stats.CriticalStock, &stats.OutOfStock)
	if err != nil {
		return domain.StockStats{}, fmt.Errorf("stock stats: %w", err)
	}
	return stats, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p            domain.Product
		barcode      *string
		categoryID   *int64
		categoryName *string
	)
	if err := row.Scan(&p.ID, &barcode, &p.Name, &p.PriceCents, &categoryID, &categoryName, &p.Stock, &p.TrackInventory); err != nil {
		return domain.Product{}, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if categoryName != nil {
		p.CategoryName = *categoryName
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
