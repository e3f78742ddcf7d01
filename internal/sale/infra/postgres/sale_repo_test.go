package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/dmedina-dev/pos-tienda/internal/sale/domain"
	pg "github.com/dmedina-dev/pos-tienda/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *SaleRepo {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://testuser:testpass@%s:%d/testdb?sslmode=disable", host, port.Int())
	require.NoError(t, pg.Migrate(url, "../../../../migrations"))

	pool, err := pg.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		INSERT INTO products (barcode, name, price_cents, stock, track_inventory)
		VALUES ('750100', 'Soda', 1000, 3, TRUE), (NULL, 'Bolsa', 150, 0, FALSE)`)
	require.NoError(t, err)

	return NewSaleRepo(pool)
}

func TestSaleRepo(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	lines := []domain.SaleLine{
		{ProductID: 1, Name: "Soda", PriceCents: 1000, Quantity: 2, TrackInventory: true},
		{ProductID: 2, Name: "Bolsa", PriceCents: 150, Quantity: 1, TrackInventory: false},
	}

	t.Run("create sale round-trips the line payload", func(t *testing.T) {
		sale, err := repo.CreateSale(ctx, domain.Sale{
			TotalCents:    2150,
			OperatorID:    7,
			Lines:         lines,
			TenderedCents: 2500,
			ChangeCents:   350,
			Method:        "cash",
		})
		require.NoError(t, err)
		assert.NotZero(t, sale.ID)
		assert.False(t, sale.CreatedAt.IsZero())

		var payload []byte
		require.NoError(t, repo.pool.QueryRow(ctx,
			`SELECT lines FROM sales WHERE id = $1`, sale.ID).Scan(&payload))

		var decoded []domain.SaleLine
		require.NoError(t, json.Unmarshal(payload, &decoded))
		assert.Equal(t, lines, decoded)
	})

	t.Run("guarded decrement", func(t *testing.T) {
		ok, err := repo.DecrementStock(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, ok)

		var stock int32
		require.NoError(t, repo.pool.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = 1`).Scan(&stock))
		assert.Equal(t, int32(1), stock)

		// Asking for more than remains matches no row and changes nothing.
		ok, err = repo.DecrementStock(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repo.pool.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = 1`).Scan(&stock))
		assert.Equal(t, int32(1), stock)
	})
}
