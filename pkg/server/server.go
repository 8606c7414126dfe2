// Package server implements the Route Composer (§4.F) and the process's
// HTTP listener: it separates public routes (health, metadata, metrics)
// from gated routes, mounting the Auth Gate only on the latter.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oauthgw/prgateway/pkg/config"
	"github.com/oauthgw/prgateway/pkg/gate"
	"github.com/oauthgw/prgateway/pkg/logger"
	"github.com/oauthgw/prgateway/pkg/metadata"
	"github.com/oauthgw/prgateway/pkg/metrics"
)

const (
	requestTimeout    = 60 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Mux wires the public and gated route sets. ToolRouter is supplied by the
// caller (see §4.G, out of scope for this package) and mounted whole
// behind the Auth Gate: the gated set is open-ended by design, so new
// tool endpoints attach without touching this file.
type Mux struct {
	MetadataDoc   metadata.Document
	MetricsHandle http.Handler
	Gate          *gate.Gate
	ToolRouter    http.Handler
}

// NewRouter assembles the chi router per §4.F. Public routes (health,
// metadata, metrics) bypass the gate entirely; everything under
// ToolRouter is mounted behind g.Middleware.
func NewRouter(m Mux) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.Recoverer,
		chimw.Timeout(requestTimeout),
		requestLogger,
	)

	r.Handle("/health", http.HandlerFunc(healthHandler))
	r.Handle(metadata.WellKnownPath, metadata.NewHandler(m.MetadataDoc))
	if m.MetricsHandle != nil {
		r.Handle("/metrics", m.MetricsHandle)
	}

	r.Group(func(gated chi.Router) {
		gated.Use(m.Gate.Middleware)
		gated.Mount("/", m.ToolRouter)
	})

	return r
}

// healthHandler implements §6: GET /health -> 200 text/plain "OK". Any
// other method gets 405 from this handler, so a non-GET /health never
// falls through to the gated catch-all mount.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// requestLogger logs one line per request carrying the chi request ID,
// method, path, and status — never headers or body, so a bearer token
// never reaches a log line through this path (§3 invariant).
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Infow("http request",
			"request_id", requestID(r),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

// Metrics builds the metrics registry used both by the Gate and by the
// /metrics endpoint, so the two always report the same counters.
func Metrics() (*metrics.Auth, http.Handler) {
	m := metrics.NewAuth()
	return m, promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})
}

// Serve starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully. Mirrors the listen/shutdown shape used throughout
// this stack's HTTP entrypoints.
func Serve(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		BaseContext:       func(net.Listener) context.Context { return ctx },
		Addr:              fmt.Sprintf(":%d", cfg.ListenPort),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server stopped with error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
