package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the server
type Metrics struct {
	registry *prometheus.Registry

	// Game lifecycle
	GamesCreatedTotal  prometheus.Counter
	GamesActive        prometheus.Gauge
	GamesFinishedTotal *prometheus.CounterVec

	// Guess traffic
	GuessesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		GamesCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "games_created_total",
				Help: "Total number of games created",
			},
		),
		GamesActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "games_active",
				Help: "Number of games currently in play",
			},
		),
		GamesFinishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "games_finished_total",
				Help: "Total number of games finished, by result",
			},
			[]string{"result"},
		),
		GuessesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guesses_total",
				Help: "Total number of guesses applied, by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registerMetrics()

	return m
}

// registerMetrics registers all metrics with the registry
func (m *Metrics) registerMetrics() {
	m.registry.MustRegister(m.GamesCreatedTotal)
	m.registry.MustRegister(m.GamesActive)
	m.registry.MustRegister(m.GamesFinishedTotal)
	m.registry.MustRegister(m.GuessesTotal)
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
