package install

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts install outcomes. Each Metrics owns a private registry so
// runs never collide with the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	components    *prometheus.CounterVec
	hooks         *prometheus.CounterVec
	dependencies  *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// Outcome labels.
const (
	outcomeInstalled = "installed"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
	outcomeNotFound  = "not_found"
	outcomePresent   = "present"
	outcomeOK        = "ok"
	outcomeError     = "error"
)

// NewMetrics creates the quickcode metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		components: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickcode",
			Name:      "components_total",
			Help:      "Component installs by outcome",
		}, []string{"outcome"}),

		hooks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickcode",
			Name:      "hooks_total",
			Help:      "Hook installs by outcome",
		}, []string{"outcome"}),

		dependencies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickcode",
			Name:      "dependencies_total",
			Help:      "npm dependency checks by outcome",
		}, []string{"outcome"}),

		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickcode",
			Name:      "fetches_total",
			Help:      "Source file fetches by URL scheme and outcome",
		}, []string{"scheme", "outcome"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quickcode",
			Name:      "fetch_duration_seconds",
			Help:      "Source file fetch latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scheme"}),
	}
}

// Gatherer exposes the metrics for scraping or testing.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) component(outcome string) {
	m.components.WithLabelValues(outcome).Inc()
}

func (m *Metrics) hook(outcome string) {
	m.hooks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) dependency(outcome string) {
	m.dependencies.WithLabelValues(outcome).Inc()
}

func (m *Metrics) fetch(scheme, outcome string, seconds float64) {
	m.fetches.WithLabelValues(scheme, outcome).Inc()
	m.fetchDuration.WithLabelValues(scheme).Observe(seconds)
}
