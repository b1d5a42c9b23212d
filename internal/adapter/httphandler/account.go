package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type AccountsHandler struct {
	accounts port.AccountManager
}

func RegisterAccounts(
	mux *http.ServeMux, requireSession middleware, accounts port.AccountManager,
) {
	h := AccountsHandler{accounts}
	handle(mux, "POST /v1/auth/login", requireSession, h.Login)
	handle(mux, "POST /v1/auth/register", requireSession, h.Register)
	handle(mux, "POST /v1/auth/logout", requireSession, h.Logout)
	handle(mux, "GET /v1/account", requireSession, h.GetAccount)
	handle(mux, "PATCH /v1/account", requireSession, h.PatchAccount)
	handle(mux, "GET /v1/account/orders", requireSession, h.GetOrders)
	handle(mux, "GET /v1/account/prescriptions", requireSession, h.GetPrescriptions)
}

func (h AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AccountsHandler.Login"
	log := slog.With("op", op)

	var c Credentials
	if err := decodeJSON(r, &c); err != nil {
		badJSON(w, log, err)
		return
	}

	s, err := h.accounts.Login(
		r.Context(), SessionID(r.Context()), c.Email, c.Password,
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromAuth(s))
	log.Info("signed in", "userID", s.User.ID)
}

func (h AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "AccountsHandler.Register"
	log := slog.With("op", op)

	var reg Registration
	if err := decodeJSON(r, &reg); err != nil {
		badJSON(w, log, err)
		return
	}

	s, err := h.accounts.Register(
		r.Context(), SessionID(r.Context()), reg.toDomain(),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusCreated, fromAuth(s))
	log.Info("registered", "userID", s.User.ID)
}

func (h AccountsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "AccountsHandler.Logout")

	if err := h.accounts.Logout(r.Context(), SessionID(r.Context())); err != nil {
		fail(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "AccountsHandler.GetAccount")

	s, err := h.accounts.Account(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromAuth(s))
}

func (h AccountsHandler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "AccountsHandler.PatchAccount")

	var patch ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		badJSON(w, log, err)
		return
	}

	s, err := h.accounts.UpdateProfile(
		r.Context(), SessionID(r.Context()), patch.toDomain(),
	)
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromAuth(s))
}

func (h AccountsHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "AccountsHandler.GetOrders")

	orders, err := h.accounts.Orders(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromOrders(orders))
}

func (h AccountsHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	log := slog.With("op", "AccountsHandler.GetPrescriptions")

	ps, err := h.accounts.Prescriptions(r.Context(), SessionID(r.Context()))
	if err != nil {
		fail(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromPrescriptions(ps))
}
