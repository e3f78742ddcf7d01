package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmedina-dev/pos-tienda/internal/catalog/app"
	"github.com/dmedina-dev/pos-tienda/internal/catalog/domain"
	paydomain "github.com/dmedina-dev/pos-tienda/internal/payment/domain"
)

type productDTO struct {
	ID             int64  `json:"id"`
	Barcode        string `json:"barcode,omitempty"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	PriceCents     int64  `json:"price_cents"`
	CategoryID     int64  `json:"category_id,omitempty"`
	CategoryName   string `json:"category_name,omitempty"`
	Stock          int32  `json:"stock"`
	TrackInventory bool   `json:"track_inventory"`
}

type productRequest struct {
	Barcode        string `json:"barcode"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	CategoryID     int64  `json:"category_id"`
	Stock          int32  `json:"stock"`
	TrackInventory *bool  `json:"track_inventory"`
}

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:             p.ID,
		Barcode:        p.Barcode,
		Name:           p.Name,
		Price:          paydomain.FormatCents(p.PriceCents),
		PriceCents:     p.PriceCents,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		Stock:          p.Stock,
		TrackInventory: p.TrackInventory,
	}
}

func toProductDTOs(products []domain.Product) []productDTO {
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTOs(products))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}

	created, err := s.catalog.CreateProduct(r.Context(), product)
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductDTO(created))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = id

	if err := s.catalog.UpdateProduct(r.Context(), product); err != nil {
		s.catalogError(w, err)
		return
	}

	updated, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTO(updated))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) lowStock(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	products, err := s.catalog.LowStock(r.Context(), limit)
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTOs(products))
}

func (s *Server) stockStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.StockStats(r.Context())
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{
		"total_products": stats.TotalProducts,
		"tracked":        stats.Tracked,
		"low_stock":      stats.LowStock,
		"critical_stock": stats.CriticalStock,
		"out_of_stock":   stats.OutOfStock,
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.catalogError(w, err)
		return
	}
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryDTO{ID: c.ID, Name: c.Name})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := s.catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, categoryDTO{ID: category.ID, Name: category.Name})
}

func (s *Server) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.catalog.RenameCategory(r.Context(), id, req.Name); err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categoryDTO{ID: id, Name: req.Name})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeleteCategory(r.Context(), id); err != nil {
		s.catalogError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, bool) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return domain.Product{}, false
	}

	priceCents, err := paydomain.ParseCents(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "price must be a non-negative decimal amount")
		return domain.Product{}, false
	}

	track := true
	if req.TrackInventory != nil {
		track = *req.TrackInventory
	}

	return domain.Product{
		Barcode:        req.Barcode,
		Name:           req.Name,
		PriceCents:     priceCents,
		CategoryID:     req.CategoryID,
		Stock:          req.Stock,
		TrackInventory: track,
	}, true
}

func (s *Server) catalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrDuplicateBarcode), errors.Is(err, app.ErrDuplicateName), errors.Is(err, app.ErrCategoryInUse):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("catalog request failed", slog.Any("err", err))
		respondError(w, http.StatusServiceUnavailable, "catalog unavailable")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
