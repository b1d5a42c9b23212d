package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type CatalogHandler struct {
	catalog port.CatalogReader
}

// RegisterCatalog leaves categories and single products public. The product
// list depends on the session search state.
func RegisterCatalog(
	mux *http.ServeMux, requireSession middleware, catalog port.CatalogReader,
) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	handle(mux, "GET /v1/products", requireSession, h.GetProducts)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromProduct(p))
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.Products(
		r.Context(), SessionID(r.Context()), r.URL.Query().Get("category"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromProducts(ps))
}
