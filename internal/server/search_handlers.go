package server

import (
	"log/slog"
	"net/http"
)

type searchResultDTO struct {
	Product productDTO `json:"product"`
	Score   int        `json:"score"`
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	results, err := s.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.log.Error("search failed", slog.Any("err", err))
		respondError(w, http.StatusServiceUnavailable, "search unavailable")
		return
	}

	out := make([]searchResultDTO, 0, len(results))
	for _, res := range results {
		out = append(out, searchResultDTO{Product: toProductDTO(res.Product), Score: res.Score})
	}
	respondJSON(w, http.StatusOK, out)
}
