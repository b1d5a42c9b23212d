package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type WishlistHandler struct {
	wishlist port.WishlistManager
}

func RegisterWishlist(
	mux *http.ServeMux, requireSession middleware, wishlist port.WishlistManager,
) {
	h := WishlistHandler{wishlist}
	handle(mux, "GET /v1/wishlist", requireSession, h.GetWishlist)
	handle(mux, "DELETE /v1/wishlist", requireSession, h.DeleteWishlist)
	handle(mux, "POST /v1/wishlist/items", requireSession, h.PostItem)
	handle(mux, "GET /v1/wishlist/items/{id}", requireSession, h.GetItem)
	handle(mux, "DELETE /v1/wishlist/items/{id}", requireSession, h.DeleteItem)
	handle(mux, "POST /v1/wishlist/items/{id}/toggle", requireSession, h.ToggleItem)
	handle(mux, "POST /v1/wishlist/items/{id}/cart", requireSession, h.MoveToCart)
}

type membership struct {
	InWishlist bool `json:"in_wishlist"`
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.GetWishlist")

	wl, err := h.wishlist.Wishlist(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromWishlist(wl))
}

func (h WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.DeleteWishlist")

	wl, err := h.wishlist.ClearWishlist(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromWishlist(wl))
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.PostItem")

	var ref ProductRef
	if err := decodeJSON(r, &ref); err != nil {
		badJSON(w, log, err)
		return
	}

	wl, err := h.wishlist.AddToWishlist(
		r.Context(), SessionID(r.Context()), ref.ProductID,
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromWishlist(wl))
}

func (h WishlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.GetItem")

	in, err := h.wishlist.InWishlist(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, membership{InWishlist: in})
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.DeleteItem")

	wl, err := h.wishlist.RemoveFromWishlist(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromWishlist(wl))
}

func (h WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.ToggleItem")

	wl, err := h.wishlist.ToggleWishlist(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromWishlist(wl))
}

func (h WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "WishlistHandler.MoveToCart")

	c, err := h.wishlist.MoveToCart(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}
