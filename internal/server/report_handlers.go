package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	paydomain "github.com/dmedina-dev/pos-tienda/internal/payment/domain"
	reportapp "github.com/dmedina-dev/pos-tienda/internal/report/app"
	"github.com/dmedina-dev/pos-tienda/internal/report/domain"
)

type methodShareDTO struct {
	Method     string  `json:"method"`
	SaleCount  int64   `json:"sale_count"`
	TotalCents int64   `json:"total_cents"`
	Total      string  `json:"total"`
	Share      float64 `json:"share_pct"`
}

type productQtyDTO struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

type zReportDTO struct {
	Date         string           `json:"date"`
	SaleCount    int64            `json:"sale_count"`
	TotalCents   int64            `json:"total_cents"`
	Total        string           `json:"total"`
	AverageCents int64            `json:"average_cents"`
	Average      string           `json:"average"`
	Methods      []methodShareDTO `json:"methods"`
	TopProducts  []productQtyDTO  `json:"top_products"`
}

func (s *Server) zReport(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	report, err := s.reports.ZReport(r.Context(), date)
	if err != nil {
		s.reportError(w, err)
		return
	}

	dto := zReportDTO{
		Date:         report.Date.Format("2006-01-02"),
		SaleCount:    report.SaleCount,
		TotalCents:   report.TotalCents,
		Total:        paydomain.FormatCents(report.TotalCents),
		AverageCents: report.AverageCents,
		Average:      paydomain.FormatCents(report.AverageCents),
		Methods:      make([]methodShareDTO, 0, len(report.Methods)),
		TopProducts:  toProductQtyDTOs(report.TopProducts),
	}
	for _, m := range report.Methods {
		dto.Methods = append(dto.Methods, methodShareDTO{
			Method:     m.Method,
			SaleCount:  m.SaleCount,
			TotalCents: m.TotalCents,
			Total:      paydomain.FormatCents(m.TotalCents),
			Share:      m.Share,
		})
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *Server) cashierReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	rows, err := s.reports.CashierReport(r.Context(), from, to)
	if err != nil {
		s.reportError(w, err)
		return
	}

	type cashierDTO struct {
		OperatorID   int64  `json:"operator_id"`
		SaleCount    int64  `json:"sale_count"`
		TotalCents   int64  `json:"total_cents"`
		Total        string `json:"total"`
		AverageCents int64  `json:"average_cents"`
	}
	out := make([]cashierDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, cashierDTO{
			OperatorID:   row.OperatorID,
			SaleCount:    row.SaleCount,
			TotalCents:   row.TotalCents,
			Total:        paydomain.FormatCents(row.TotalCents),
			AverageCents: row.AverageCents,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) productReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	ranked, err := s.reports.ProductReport(r.Context(), from, to)
	if err != nil {
		s.reportError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductQtyDTOs(ranked))
}

func (s *Server) comparativeReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	cmp, err := s.reports.Comparative(r.Context(), from, to)
	if err != nil {
		s.reportError(w, err)
		return
	}

	type periodDTO struct {
		From       string `json:"from"`
		To         string `json:"to"`
		SaleCount  int64  `json:"sale_count"`
		TotalCents int64  `json:"total_cents"`
		Total      string `json:"total"`
	}
	toDTO := func(p domain.Period) periodDTO {
		return periodDTO{
			From:       p.From.Format("2006-01-02"),
			To:         p.To.Format("2006-01-02"),
			SaleCount:  p.SaleCount,
			TotalCents: p.TotalCents,
			Total:      paydomain.FormatCents(p.TotalCents),
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"current":         toDTO(cmp.Current),
		"previous":        toDTO(cmp.Previous),
		"count_delta_pct": cmp.CountDeltaPct,
		"total_delta_pct": cmp.TotalDeltaPct,
	})
}

func (s *Server) trendsReport(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = parsed
	}

	trends, err := s.reports.Trends(r.Context(), days)
	if err != nil {
		s.reportError(w, err)
		return
	}

	type dayDTO struct {
		Date       string `json:"date"`
		SaleCount  int64  `json:"sale_count"`
		TotalCents int64  `json:"total_cents"`
	}
	daysOut := make([]dayDTO, 0, len(trends.Days))
	for _, day := range trends.Days {
		daysOut = append(daysOut, dayDTO{
			Date:       day.Date.Format("2006-01-02"),
			SaleCount:  day.SaleCount,
			TotalCents: day.TotalCents,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"days":                daysOut,
		"total_cents":         trends.TotalCents,
		"daily_average_cents": trends.DailyAverageCents,
		"best_day": dayDTO{
			Date:       trends.BestDay.Date.Format("2006-01-02"),
			SaleCount:  trends.BestDay.SaleCount,
			TotalCents: trends.BestDay.TotalCents,
		},
	})
}

func toProductQtyDTOs(ranked []domain.ProductQty) []productQtyDTO {
	out := make([]productQtyDTO, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, productQtyDTO{
			ProductID:  p.ProductID,
			Name:       p.Name,
			Quantity:   p.Quantity,
			TotalCents: p.TotalCents,
			Total:      paydomain.FormatCents(p.TotalCents),
		})
	}
	return out
}

// reportPeriod reads ?from=&to= with a default of the last 30 days.
func reportPeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		respondError(w, http.StatusBadRequest, "from must precede to")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (s *Server) reportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reportapp.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("report request failed", slog.Any("err", err))
		respondError(w, http.StatusServiceUnavailable, "reports unavailable")
	}
}
