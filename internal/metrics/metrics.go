// Package metrics exposes the Prometheus collectors of the inventory store and
// the recipe pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that several instances (one per test) never collide.
type Metrics struct {
	registry *prometheus.Registry

	storeMutations      *prometheus.CounterVec
	activeSubscriptions prometheus.Gauge
	snapshotDeliveries  prometheus.Counter
	recipeRequests      *prometheus.CounterVec
	generationDuration  prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		storeMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_store_mutations_total",
				Help: "Mutations issued against the item collection",
			},
			[]string{"op", "outcome"},
		),
		activeSubscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pantry_snapshot_subscriptions",
			Help: "Live snapshot subscriptions",
		}),
		snapshotDeliveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_snapshot_deliveries_total",
			Help: "Snapshots handed to subscriber callbacks",
		}),
		recipeRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_recipe_requests_total",
				Help: "Recipe requests by result kind",
			},
			[]string{"result"},
		),
		generationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pantry_generation_duration_seconds",
			Help:    "Latency of text-generation calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
	}
}

// Nil receivers are valid and record nothing, so components can run unmetered.

func (m *Metrics) StoreMutation(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.storeMutations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) SubscriptionOpened() {
	if m != nil {
		m.activeSubscriptions.Inc()
	}
}

func (m *Metrics) SubscriptionClosed() {
	if m != nil {
		m.activeSubscriptions.Dec()
	}
}

func (m *Metrics) SnapshotDelivered() {
	if m != nil {
		m.snapshotDeliveries.Inc()
	}
}

func (m *Metrics) RecipeResult(result string) {
	if m != nil {
		m.recipeRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) GenerationObserved(d time.Duration) {
	if m != nil {
		m.generationDuration.Observe(d.Seconds())
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
