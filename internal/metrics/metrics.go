// Package metrics exposes Prometheus instruments for draws and the API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

// Metrics tracks draw outcomes, attempt counts and request latency.
type Metrics struct {
	registry *prometheus.Registry

	DrawsTotal      *prometheus.CounterVec
	DrawAttempts    *prometheus.HistogramVec
	DrawDuration    *prometheus.HistogramVec
	TeamRetries     prometheus.Counter
	Violations      prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DrawsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoracle_draws_total",
			Help: "Total number of draws run, by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		DrawAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scoracle_draw_attempts",
			Help:    "Full attempts started per draw",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 500, 1000, 5000, 25000},
		}, []string{"strategy"}),
		DrawDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scoracle_draw_duration_seconds",
			Help:    "Duration of a draw run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"strategy"}),
		TeamRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoracle_draw_team_retries_total",
			Help: "Checkpoint restores performed by the sequential strategy",
		}),
		Violations: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoracle_draw_violations_total",
			Help: "Constraint violations reported by verification of successful draws",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scoracle_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveDraw records a finished run and the verifier's violation count.
func (m *Metrics) ObserveDraw(res draw.Result, violations int) {
	outcome := "success"
	if !res.Success {
		outcome = "exhausted"
	}
	m.DrawsTotal.WithLabelValues(res.Strategy, outcome).Inc()
	m.DrawAttempts.WithLabelValues(res.Strategy).Observe(float64(res.Attempts))
	m.DrawDuration.WithLabelValues(res.Strategy).Observe(res.Duration.Seconds())
	m.TeamRetries.Add(float64(res.TeamRetries))
	m.Violations.Add(float64(violations))
}

// ObserveRequest records the latency of one request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(route string, start time.Time) {
	m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
