package httphandler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	handlerTimeout    = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 30 * time.Second
	spanName          = "pharmacy.http"
)

type HTTPServer struct {
	srv *http.Server
}

// NewHTTPServer bounds every request by handlerTimeout and traces it.
func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	handler = http.TimeoutHandler(
		handler, handlerTimeout, `{"error":"request timed out"}`,
	)
	return HTTPServer{&http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(handler, spanName),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

// Run serves until Close. stopFn is called whenever serving ends, so a
// failed listener brings the application down. The error is nil after Close.
func (s HTTPServer) Run(stopFn context.CancelFunc) error {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)
	defer stopFn()

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		log.Error("failed to listen", "addr", s.srv.Addr, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("serving storefront", "addr", ln.Addr().String())
	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	log.Error("server stopped unexpectedly", "err", err)
	return fmt.Errorf("%s: %w", op, err)
}

// Close waits for in-flight requests until ctx is done, then drops the
// remaining connections.
func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("shutting down http server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown interrupted", "err", err)
		if err := s.srv.Close(); err != nil {
			log.Error("failed to close connections", "err", err)
		}
	}
	log.Info("http server is down")
}
