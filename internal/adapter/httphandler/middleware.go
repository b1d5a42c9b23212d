package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/pharmacy/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
		if strings.TrimSpace(mediaType) != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type sessionKey struct{}

func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionID returns the session id put in ctx by RequireSession.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

// RequireSession answers 401 unless the request carries a valid bearer
// token naming a live session.
func RequireSession(
	tokens TokenIssuer, sessions port.SessionKeeper,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hf := func(w http.ResponseWriter, r *http.Request) {
			const op = "RequireSession"
			log := slog.With("op", op)

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeError(w, http.StatusUnauthorized, "session token required")
				return
			}

			sid, err := tokens.Parse(raw)
			if err != nil {
				log.Warn("rejected token", "err", err)
				writeError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			if err := sessions.Touch(r.Context(), sid); err != nil {
				log.Warn("rejected session", "err", err)
				writeError(w, http.StatusUnauthorized, "session expired")
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(
				attribute.String("session.id", sid),
			)
			next.ServeHTTP(w, r.WithContext(withSessionID(r.Context(), sid)))
		}
		return http.HandlerFunc(hf)
	}
}
