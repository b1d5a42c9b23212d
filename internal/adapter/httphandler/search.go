package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type SearchHandler struct {
	search port.SearchManager
}

func RegisterSearch(
	mux *http.ServeMux, requireSession middleware, search port.SearchManager,
) {
	h := SearchHandler{search}
	handle(mux, "GET /v1/search", requireSession, h.GetSearch)
	handle(mux, "PUT /v1/search", requireSession, h.PutSearch)
	handle(mux, "DELETE /v1/search", requireSession, h.DeleteSearch)
}

func (h SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "SearchHandler.GetSearch")

	s, err := h.search.Search(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromSearch(s))
}

func (h SearchHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "SearchHandler.PutSearch")

	var q SearchQuery
	if err := decodeJSON(r, &q); err != nil {
		badJSON(w, log, err)
		return
	}

	s, err := h.search.SetSearchQuery(r.Context(), SessionID(r.Context()), q.Query)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromSearch(s))
}

func (h SearchHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "SearchHandler.DeleteSearch")

	s, err := h.search.ClearSearch(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromSearch(s))
}
