package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/charts"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/export"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/filter"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/presenter"
)

// Route labels for metrics.
const (
	routeDashboard = "dashboard"
	routeCharts    = "charts"
	routeSummary   = "summary"
	routeExport    = "export"
)

// view parses the request's selection and runs the pipeline. On a bad
// selection it answers 400 and returns nil.
func (s *Server) view(w http.ResponseWriter, r *http.Request, route string) *dashboard.View {
	sel, preview, err := filter.FromQuery(r.URL.Query(), s.builder.DefaultSelection())
	if err != nil {
		s.metrics.InvalidQueries.WithLabelValues(route).Inc()
		s.logger.WarnContext(r.Context(), "invalid selection",
			slog.String("route", route),
			slog.String("query", r.URL.RawQuery),
			slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	view := s.builder.Build(r.Context(), sel, preview)
	s.metrics.Renders.WithLabelValues(route).Inc()
	s.metrics.FilteredRecords.Set(float64(len(view.Filtered)))
	return view
}

// write renders into a buffer first so a failed render can still answer 500.
func (s *Server) write(w http.ResponseWriter, r *http.Request, route, contentType string, fn func(*bytes.Buffer) error) {
	start := time.Now()
	defer func() {
		s.metrics.RenderDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger.ErrorContext(r.Context(), "render failed",
			slog.String("route", route),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.WarnContext(r.Context(), "response write failed", slog.String("error", err.Error()))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, routeDashboard)
	if view == nil {
		return
	}

	query := presenter.Query(view.Selection, view.ShowPreview)
	opts := presenter.PageOptions{
		ChartsURL: "/charts?" + query,
		ExportURL: "/export.xlsx?" + query,
	}

	s.write(w, r, routeDashboard, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return s.html.Render(buf, view, opts)
	})
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, routeCharts)
	if view == nil {
		return
	}

	s.write(w, r, routeCharts, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return charts.RenderPage(buf, view)
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, routeSummary)
	if view == nil {
		return
	}
	render.JSON(w, r, view)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, routeExport)
	if view == nil {
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bikeshare.xlsx"))
	s.write(w, r, routeExport, export.ContentType, func(buf *bytes.Buffer) error {
		return export.Write(buf, view)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"records": len(s.builder.Dataset().Records),
	})
}
