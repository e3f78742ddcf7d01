package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	cartapp "github.com/dmedina-dev/pos-tienda/internal/cart/app"
	cartadapter "github.com/dmedina-dev/pos-tienda/internal/cart/infra/adapter"
	catalogapp "github.com/dmedina-dev/pos-tienda/internal/catalog/app"
	catalogpg "github.com/dmedina-dev/pos-tienda/internal/catalog/infra/postgres"
	reportapp "github.com/dmedina-dev/pos-tienda/internal/report/app"
	reportpg "github.com/dmedina-dev/pos-tienda/internal/report/infra/postgres"
	saleapp "github.com/dmedina-dev/pos-tienda/internal/sale/app"
	salepg "github.com/dmedina-dev/pos-tienda/internal/sale/infra/postgres"
	searchapp "github.com/dmedina-dev/pos-tienda/internal/search/app"
	"github.com/dmedina-dev/pos-tienda/internal/search/cache"
	"github.com/dmedina-dev/pos-tienda/internal/server"
	"github.com/dmedina-dev/pos-tienda/pkg/config"
	"github.com/dmedina-dev/pos-tienda/pkg/logger"
	"github.com/dmedina-dev/pos-tienda/pkg/metrics"
	pg "github.com/dmedina-dev/pos-tienda/pkg/postgres"
	"github.com/dmedina-dev/pos-tienda/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "pos", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := pg.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Error("migrations failed", slog.Any("err", err))
		os.Exit(1)
	}
	pool, err := pg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	m := metrics.New("server")

	// Catalog
	catalogSvc := catalogapp.NewService(
		catalogpg.NewProductRepo(pool),
		catalogpg.NewCategoryRepo(pool),
	)

	// Carts, one engine per terminal session
	carts := cartapp.NewManager(cartadapter.NewCatalogServiceReader(catalogSvc))

	// Search
	var snapshots cache.SnapshotCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		snapshots = cache.NewRedisCache(client, cfg.SearchCacheTTL)
		log.Info("search cache on redis", slog.String("addr", cfg.RedisAddr))
	} else {
		snapshots = cache.NewMemoryCache(cfg.SearchCacheTTL)
	}
	searchSvc := searchapp.NewService(catalogSvc, snapshots, log)

	// Sales
	saleSvc := saleapp.NewService(salepg.NewSaleRepo(pool), log, m.SalesSettled, m.StockDecrementsSkips)

	// Reports
	reportSvc := reportapp.NewService(reportpg.NewReportRepo(pool))

	srv := server.New(log, m, catalogSvc, carts, searchSvc, saleSvc, reportSvc)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := httpServer.Shutdown(stopCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}
	wg.Wait()
	log.Info("stopped")
}
