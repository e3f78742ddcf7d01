package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	payapp "github.com/dmedina-dev/pos-tienda/internal/payment/app"
	paydomain "github.com/dmedina-dev/pos-tienda/internal/payment/domain"
	reportapp "github.com/dmedina-dev/pos-tienda/internal/report/app"
	saleapp "github.com/dmedina-dev/pos-tienda/internal/sale/app"
	saledomain "github.com/dmedina-dev/pos-tienda/internal/sale/domain"
)

type denominationDTO struct {
	UnitCents int64 `json:"unit_cents"`
	Count     int64 `json:"count"`
}

type previewResponse struct {
	TotalCents     int64             `json:"total_cents"`
	TenderedCents  int64             `json:"tendered_cents"`
	ChangeCents    int64             `json:"change_cents"`
	Change         string            `json:"change"`
	Sufficient     bool              `json:"sufficient"`
	Denominations  []denominationDTO `json:"denominations,omitempty"`
	RemainderCents int64             `json:"remainder_cents,omitempty"`
}

type saleRequest struct {
	Method    string `json:"method"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

type saleResponse struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	TotalCents  int64     `json:"total_cents"`
	Total       string    `json:"total"`
	ChangeCents int64     `json:"change_cents"`
	Change      string    `json:"change"`
	Method      string    `json:"method"`
}

// previewPayment shows the cashier the change before anything commits.
func (s *Server) previewPayment(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount string `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	total := engine.TotalCents()
	tendered := total
	if req.Amount != "" {
		cents, err := paydomain.ParseCents(req.Amount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "amount must be a non-negative decimal amount")
			return
		}
		tendered = cents
	}

	resp := previewResponse{
		TotalCents:    total,
		TenderedCents: tendered,
		ChangeCents:   tendered - total,
		Change:        paydomain.FormatCents(tendered - total),
		Sufficient:    tendered >= total,
	}
	if change := tendered - total; change > 0 {
		breakdown := paydomain.ChangeBreakdown(change)
		for _, line := range breakdown.Lines {
			resp.Denominations = append(resp.Denominations, denominationDTO{
				UnitCents: line.UnitCents,
				Count:     line.Count,
			})
		}
		resp.RemainderCents = breakdown.RemainderCents
	}
	respondJSON(w, http.StatusOK, resp)
}

// createSale drives one payment workflow from method selection through
// confirmation and settles the cart. The cart survives a rejection so the
// operator can correct and retry.
func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.session(w, r)
	if !ok {
		return
	}
	operatorID, err := strconv.ParseInt(r.Header.Get(headerOperator), 10, 64)
	if err != nil || operatorID < 1 {
		respondError(w, http.StatusBadRequest, "missing or invalid "+headerOperator+" header")
		return
	}

	var req saleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	method, err := paydomain.ParseMethod(req.Method)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart := engine.Snapshot()
	if cart.Empty() {
		respondError(w, http.StatusConflict, "cart is empty")
		return
	}

	wf := payapp.NewWorkflow(cart.TotalCents())
	if err := wf.SelectMethod(method); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount != "" || method.IsCash() {
		if err := wf.EnterAmount(req.Amount); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Reference != "" {
		if err := wf.EnterReference(req.Reference); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if state, _ := wf.Validate(); state == payapp.Rejected {
		if method.IsCash() {
			respondError(w, http.StatusUnprocessableEntity, "amount tendered is below the total")
			return
		}
		respondError(w, http.StatusUnprocessableEntity, string(method)+" requires a "+method.ReferenceLabel())
		return
	}
	if err := wf.Confirm(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	attempt, err := wf.Attempt()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	lines := make([]saledomain.SaleLine, 0, len(cart.Items))
	for _, li := range cart.Items {
		lines = append(lines, saledomain.SaleLine{
			ProductID:      li.ProductID,
			Name:           li.Name,
			PriceCents:     li.PriceCents,
			Quantity:       li.Quantity,
			TrackInventory: li.TrackInventory,
		})
	}

	sale, err := s.sales.Settle(r.Context(), operatorID, lines, saledomain.Payment{
		Method:        string(attempt.Method),
		TenderedCents: attempt.TenderedCents,
		ChangeCents:   attempt.ChangeCents,
		Reference:     attempt.Reference,
	})
	if err != nil {
		if errors.Is(err, saleapp.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "cart is empty")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "sale could not be recorded")
		return
	}

	engine.Clear()
	respondJSON(w, http.StatusCreated, saleResponse{
		ID:          sale.ID,
		CreatedAt:   sale.CreatedAt,
		TotalCents:  sale.TotalCents,
		Total:       paydomain.FormatCents(sale.TotalCents),
		ChangeCents: sale.ChangeCents,
		Change:      paydomain.FormatCents(sale.ChangeCents),
		Method:      sale.Method,
	})
}

type saleListItem struct {
	ID         int64                  `json:"id"`
	CreatedAt  time.Time              `json:"created_at"`
	OperatorID int64                  `json:"operator_id"`
	Method     string                 `json:"method"`
	TotalCents int64                  `json:"total_cents"`
	Total      string                 `json:"total"`
	Lines      []reportapp.LineRecord `json:"lines"`
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	filter, ok := saleFilter(w, r)
	if !ok {
		return
	}

	records, err := s.reports.ListSales(r.Context(), filter)
	if err != nil {
		s.reportError(w, err)
		return
	}

	out := make([]saleListItem, 0, len(records))
	for _, rec := range records {
		out = append(out, saleListItem{
			ID:         rec.ID,
			CreatedAt:  rec.CreatedAt,
			OperatorID: rec.OperatorID,
			Method:     rec.Method,
			TotalCents: rec.TotalCents,
			Total:      paydomain.FormatCents(rec.TotalCents),
			Lines:      rec.Lines,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// saleFilter reads ?date= or ?from=&to= plus ?operator_id=.
func saleFilter(w http.ResponseWriter, r *http.Request) (reportapp.Filter, bool) {
	q := r.URL.Query()
	var filter reportapp.Filter

	if raw := q.Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return filter, false
		}
		filter.From = day
		filter.To = day.AddDate(0, 0, 1)
	} else {
		if raw := q.Get("from"); raw != "" {
			from, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
				return filter, false
			}
			filter.From = from
		}
		if raw := q.Get("to"); raw != "" {
			to, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
				return filter, false
			}
			filter.To = to.AddDate(0, 0, 1)
		}
	}

	if raw := q.Get("operator_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			respondError(w, http.StatusBadRequest, "operator_id must be a positive integer")
			return filter, false
		}
		filter.OperatorID = id
	}
	return filter, true
}
