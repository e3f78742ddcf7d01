package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	cartapp "github.com/dmedina-dev/pos-tienda/internal/cart/app"
	cartdomain "github.com/dmedina-dev/pos-tienda/internal/cart/domain"
	paydomain "github.com/dmedina-dev/pos-tienda/internal/payment/domain"
)

type cartLineDTO struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	PriceCents     int64  `json:"price_cents"`
	Quantity       int32  `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
	TrackInventory bool   `json:"track_inventory"`
}

type cartDTO struct {
	Lines      []cartLineDTO `json:"lines"`
	TotalCents int64         `json:"total_cents"`
	Total      string        `json:"total"`
}

func toCartDTO(c cartdomain.Cart) cartDTO {
	lines := make([]cartLineDTO, 0, len(c.Items))
	for _, li := range c.Items {
		lines = append(lines, cartLineDTO{
			ProductID:      li.ProductID,
			Name:           li.Name,
			PriceCents:     li.PriceCents,
			Quantity:       li.Quantity,
			SubtotalCents:  li.SubtotalCents(),
			TrackInventory: li.TrackInventory,
		})
	}
	total := c.TotalCents()
	return cartDTO{Lines: lines, TotalCents: total, Total: paydomain.FormatCents(total)}
}

func (s *Server) openSession(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusCreated, map[string]string{"session_id": s.carts.Open()})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(engine.Snapshot()))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID < 1 {
		respondError(w, http.StatusBadRequest, "product_id must be positive")
		return
	}

	cart, err := engine.AddItem(r.Context(), req.ProductID)
	if err != nil {
		s.cartError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCartDTO(cart))
}

func (s *Server) changeQuantity(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	var req struct {
		Delta int32 `json:"delta"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "delta must be non-zero")
		return
	}

	cart, err := engine.ChangeQuantity(r.Context(), index, req.Delta)
	if err != nil {
		s.cartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(cart))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	cart, err := engine.RemoveItem(index)
	if err != nil {
		s.cartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(cart))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}
	engine.Clear()
	respondJSON(w, http.StatusOK, toCartDTO(cartdomain.Cart{}))
}

// session resolves the engine behind the X-Session-Id header.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*cartapp.Engine, bool) {
	id := r.Header.Get(headerSession)
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing "+headerSession+" header")
		return nil, false
	}
	engine, err := s.carts.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return engine, true
}

func (s *Server) cartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cartapp.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, cartapp.ErrOutOfStock), errors.Is(err, cartapp.ErrStockExceeded):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, cartapp.ErrInvalidIndex):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusServiceUnavailable, "catalog unavailable")
	}
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid line index")
		return 0, false
	}
	return index, true
}
