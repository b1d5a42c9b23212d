package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type CheckoutHandler struct {
	checkout port.CheckoutProcessor
}

func RegisterCheckout(
	mux *http.ServeMux, requireSession middleware, checkout port.CheckoutProcessor,
) {
	h := CheckoutHandler{checkout}
	handle(mux, "GET /v1/checkout/quote", requireSession, h.GetQuote)
	handle(mux, "POST /v1/checkout", requireSession, h.PostCheckout)
}

func (h CheckoutHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "CheckoutHandler.GetQuote")

	q, err := h.checkout.Quote(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromQuote(q))
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var form CheckoutForm
	if err := decodeJSON(r, &form); err != nil {
		badJSON(w, log, err)
		return
	}

	o, err := h.checkout.Checkout(r.Context(), SessionID(r.Context()), form.toDomain())
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusCreated, fromOrder(o))
	log.Info("checked out", "orderID", o.ID)
}
