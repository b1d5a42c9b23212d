package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

type SessionsHandler struct {
	tokens   TokenIssuer
	sessions port.SessionKeeper
}

func RegisterSessions(
	mux *http.ServeMux,
	requireSession middleware,
	tokens TokenIssuer,
	sessions port.SessionKeeper,
) {
	h := SessionsHandler{tokens, sessions}
	mux.HandleFunc("POST /v1/sessions", h.PostSession)
	handle(mux, "DELETE /v1/sessions", requireSession, h.DeleteSession)
}

func (h SessionsHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	const op = "SessionsHandler.PostSession"
	log := slog.With("op", op)

	sid, err := h.sessions.StartSession(r.Context())
	if err != nil {
		fail(w, log, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(sid)
	if err != nil {
		fail(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, Session{Token: token, ExpiresAt: expiresAt})
	log.Info("session started", "sessionID", sid)
}

func (h SessionsHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "SessionsHandler.DeleteSession"
	log := slog.With("op", op)

	sid := SessionID(r.Context())
	if err := h.sessions.EndSession(r.Context(), sid); err != nil {
		fail(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("session ended", "sessionID", sid)
}
