package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(
	mux *http.ServeMux, requireSession middleware, cart port.CartManager,
) {
	h := CartHandler{cart}
	handle(mux, "GET /v1/cart", requireSession, h.GetCart)
	handle(mux, "DELETE /v1/cart", requireSession, h.DeleteCart)
	handle(mux, "POST /v1/cart/items", requireSession, h.PostItem)
	handle(mux, "PATCH /v1/cart/items/{id}", requireSession, h.PatchItem)
	handle(mux, "DELETE /v1/cart/items/{id}", requireSession, h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "CartHandler.GetCart")

	c, err := h.cart.Cart(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "CartHandler.DeleteCart")

	c, err := h.cart.ClearCart(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var ref ProductRef
	if err := decodeJSON(r, &ref); err != nil {
		badJSON(w, log, err)
		return
	}

	c, err := h.cart.AddToCart(r.Context(), SessionID(r.Context()), ref.ProductID)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
	log.Debug("added to cart", "productID", ref.ProductID)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "CartHandler.PatchItem")

	var upd QuantityUpdate
	if err := decodeJSON(r, &upd); err != nil {
		badJSON(w, log, err)
		return
	}

	c, err := h.cart.SetCartQuantity(
		r.Context(), SessionID(r.Context()), r.PathValue("id"), upd.Quantity,
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "CartHandler.DeleteItem")

	c, err := h.cart.RemoveFromCart(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}
