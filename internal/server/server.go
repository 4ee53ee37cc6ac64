// =============================================================================
// Bike Sharing Dashboard - HTTP Server
// =============================================================================
//
// Serves the dashboard over HTTP. Every request parses its own selection
// from the query string and runs the full pipeline against the dataset
// loaded at startup; handlers share nothing mutable.
//
// ROUTES:
//   GET /             dashboard page
//   GET /charts       interactive chart page for the same query
//   GET /api/summary  JSON view model
//   GET /export.xlsx  workbook of the filtered rows and aggregates
//   GET /healthz      liveness + loaded row count
//   GET /metrics      Prometheus metrics (optional)
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/config"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/presenter"
)

// Server is the HTTP dashboard.
type Server struct {
	cfg     config.ServerConfig
	builder *dashboard.Builder
	html    *presenter.HTML
	metrics *Metrics
	logger  *slog.Logger
	router  chi.Router
}

// New creates the server and its routes. Nothing listens until Run.
func New(cfg config.ServerConfig, builder *dashboard.Builder, logger *slog.Logger) (*Server, error) {
	html, err := presenter.NewHTML()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		builder: builder,
		html:    html,
		metrics: NewMetrics(),
		logger:  logger.With(slog.String("component", "server")),
	}
	s.metrics.LoadedRecords.Set(float64(len(builder.Dataset().Records)))
	s.router = s.routes()

	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/charts", s.handleCharts)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/export.xlsx", s.handleExport)
	r.Get("/healthz", s.handleHealth)

	if s.cfg.MetricsEnabled() {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return r
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "dashboard listening", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// requestLogger logs one line per request with status, size and latency.
// The request id is added by the logging handler.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
