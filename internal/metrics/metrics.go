package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"call-insights-go/internal/pipeline"
)

// Metrics owns a private registry so tests and multiple servers don't collide.
type Metrics struct {
	registry *prometheus.Registry

	TrendQueries      *prometheus.CounterVec
	SuppressedBuckets *prometheus.CounterVec
	QueryDuration     *prometheus.HistogramVec
	DatasetRecords    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TrendQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callinsights_trend_queries_total",
				Help: "Total number of topic-trends queries by selection mode",
			},
			[]string{"mode"},
		),
		SuppressedBuckets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callinsights_suppressed_buckets_total",
				Help: "Time-of-day buckets suppressed for having too few calls",
			},
			[]string{"bucket"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callinsights_query_duration_seconds",
				Help:    "Time spent answering dashboard queries",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"endpoint"},
		),
		DatasetRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "callinsights_dataset_records",
				Help: "Number of call records loaded",
			},
		),
	}
	m.registry.MustRegister(m.TrendQueries, m.SuppressedBuckets, m.QueryDuration, m.DatasetRecords)
	return m
}

// ObserveReport records a completed trends query.
func (m *Metrics) ObserveReport(rep pipeline.Report, mode string, took time.Duration) {
	m.TrendQueries.WithLabelValues(mode).Inc()
	for _, b := range rep.Buckets.Suppressed() {
		if b.Total > 0 {
			m.SuppressedBuckets.WithLabelValues(string(b.TimeOfDay)).Inc()
		}
	}
	m.QueryDuration.WithLabelValues("trends").Observe(took.Seconds())
}

// ObserveDuration records the latency of a non-trends endpoint.
func (m *Metrics) ObserveDuration(endpoint string, took time.Duration) {
	m.QueryDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
