// Package metrics exposes Prometheus instruments for puzzle generation and play.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

// Metrics owns a private registry so tests can build many servers.
type Metrics struct {
	reg *prometheus.Registry

	gridsGenerated     *prometheus.CounterVec
	generationFailures prometheus.Counter
	placementAttempts  prometheus.Histogram
	generationSeconds  prometheus.Histogram
	verifications      *prometheus.CounterVec
	completions        *prometheus.CounterVec
}

// New registers all instruments plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		gridsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordsearch_grids_generated_total",
			Help: "Grids generated, by game mode.",
		}, []string{"mode"}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wordsearch_generation_failures_total",
			Help: "Grid generations rejected with a configuration error.",
		}),
		placementAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordsearch_placement_attempts",
			Help:    "Placement checks needed to build one grid.",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordsearch_generation_seconds",
			Help:    "Wall time to build one grid.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordsearch_verifications_total",
			Help: "Selection checks, by outcome.",
		}, []string{"outcome"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordsearch_completions_total",
			Help: "Puzzles with every word found, by game mode.",
		}, []string{"mode"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gridsGenerated,
		m.generationFailures,
		m.placementAttempts,
		m.generationSeconds,
		m.verifications,
		m.completions,
	)
	return m
}

// Generated records a successful generation.
func (m *Metrics) Generated(mode string, st puzzle.Stats) {
	m.gridsGenerated.WithLabelValues(mode).Inc()
	m.placementAttempts.Observe(float64(st.Attempts))
	m.generationSeconds.Observe(st.Duration.Seconds())
}

// GenerationFailed records a rejected generation.
func (m *Metrics) GenerationFailed() { m.generationFailures.Inc() }

// Verified records one verification outcome.
func (m *Metrics) Verified(o puzzle.Outcome) {
	m.verifications.WithLabelValues(string(o)).Inc()
}

// Completed records a finished puzzle.
func (m *Metrics) Completed(mode string) { m.completions.WithLabelValues(mode).Inc() }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
