package api

import (
	"net/http"
	"time"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/search"
	"github.com/rubiojr/fhsearch/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := funeralhomes.FiltersFromQuery(q, funeralhomes.Fields...)

	view := search.NewViewAt(filters, search.ParsePage(q.Get("page")))
	fetcher := search.NewFetcher(s.source())
	state := fetcher.Run(r.Context(), view, view.Begin())

	if state.Error != "" {
		s.logger.Warnf("Search failed: %s", state.Error)
		s.writeError(w, http.StatusBadGateway, "Search failed", state.Error)
		return
	}

	response := SearchResponse{
		Rows:      state.Rows,
		Total:     state.Total,
		Page:      state.Page + 1,
		PageSize:  state.PageSize,
		PageCount: state.PageCount,
		HasPrev:   state.CanPrev,
		HasNext:   state.CanNext,
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
