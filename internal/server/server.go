package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cartapp "github.com/dmedina-dev/pos-tienda/internal/cart/app"
	catalogapp "github.com/dmedina-dev/pos-tienda/internal/catalog/app"
	reportapp "github.com/dmedina-dev/pos-tienda/internal/report/app"
	saleapp "github.com/dmedina-dev/pos-tienda/internal/sale/app"
	searchapp "github.com/dmedina-dev/pos-tienda/internal/search/app"
	"github.com/dmedina-dev/pos-tienda/pkg/metrics"
)

const (
	headerSession  = "X-Session-Id"
	headerOperator = "X-Operator-Id"
)

// Server binds all checkout services to one HTTP surface.
type Server struct {
	log     *slog.Logger
	metrics *metrics.Metrics

	catalog *catalogapp.Service
	carts   *cartapp.Manager
	search  *searchapp.Service
	sales   *saleapp.Service
	reports *reportapp.Service
}

func New(
	log *slog.Logger,
	m *metrics.Metrics,
	catalog *catalogapp.Service,
	carts *cartapp.Manager,
	search *searchapp.Service,
	sales *saleapp.Service,
	reports *reportapp.Service,
) *Server {
	return &Server{
		log:     log,
		metrics: m,
		catalog: catalog,
		carts:   carts,
		search:  search,
		sales:   sales,
		reports: reports,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.openSession)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.createProduct)
			r.Get("/low-stock", s.lowStock)
			r.Get("/stock-stats", s.stockStats)
			r.Put("/{id}", s.updateProduct)
			r.Delete("/{id}", s.deleteProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Put("/{id}", s.renameCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Get("/search", s.searchProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Delete("/", s.clearCart)
			r.Post("/items", s.addItem)
			r.Patch("/items/{index}", s.changeQuantity)
			r.Delete("/items/{index}", s.removeItem)
		})

		r.Post("/payment/preview", s.previewPayment)

		r.Post("/sales", s.createSale)
		r.Get("/sales", s.listSales)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/z", s.zReport)
			r.Get("/cashiers", s.cashierReport)
			r.Get("/products", s.productReport)
			r.Get("/comparative", s.comparativeReport)
			r.Get("/trends", s.trendsReport)
		})
	})

	return r
}

// observe wraps each request with structured logging and metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		handler := r.Method + " " + pattern
		s.metrics.Requests.WithLabelValues(handler, strconv.Itoa(ww.Status())).Inc()
		s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))

		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", elapsed),
		)
	})
}
