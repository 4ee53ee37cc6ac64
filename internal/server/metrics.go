package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "bikedash"

// Metrics are the dashboard's Prometheus collectors, on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Renders         *prometheus.CounterVec
	InvalidQueries  *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	FilteredRecords prometheus.Gauge
	LoadedRecords   prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Dashboard recomputations, by route.",
		}, []string{"route"}),
		InvalidQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "invalid_queries_total",
			Help:      "Requests rejected for an invalid filter selection, by route.",
		}, []string{"route"}),
		RenderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Time to recompute and render one view, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		FilteredRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "filtered_records",
			Help:      "Rows left by the most recent selection.",
		}),
		LoadedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "loaded_records",
			Help:      "Rows in the loaded dataset.",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
