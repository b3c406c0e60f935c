// Package metrics exposes setup status as Prometheus metrics.
//
// Each Metrics value owns its own registry so tests and multiple servers in
// one process never collide on metric registration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsdesk"

// Metrics holds the collectors describing the configuration status.
type Metrics struct {
	registry *prometheus.Registry

	// Checks mirrors each status flag: 1 when true, 0 when false.
	// Labels: check (e.g. "storage_ready")
	Checks *prometheus.GaugeVec

	// StorageRepairs counts storage repair attempts.
	// Labels: result ("success", "failure")
	StorageRepairs *prometheus.CounterVec

	// ConfiguredCredentials is the number of credentials with a value.
	ConfiguredCredentials prometheus.Gauge
}

// New creates Metrics registered on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Checks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "setup_check",
			Help:      "Result of the most recent setup check (1 ok, 0 failing).",
		}, []string{"check"}),
		StorageRepairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_repairs_total",
			Help:      "Storage layout repair attempts by result.",
		}, []string{"result"}),
		ConfiguredCredentials: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "configured_credentials",
			Help:      "Number of external service credentials that are set.",
		}),
	}
	m.registry.MustRegister(m.Checks, m.StorageRepairs, m.ConfiguredCredentials)
	return m
}

// ObserveCheck records the latest value of one status flag.
func (m *Metrics) ObserveCheck(name string, ok bool) {
	if m == nil {
		return
	}
	value := 0.0
	if ok {
		value = 1
	}
	m.Checks.WithLabelValues(name).Set(value)
}

// ObserveRepair records the outcome of a storage repair.
func (m *Metrics) ObserveRepair(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.StorageRepairs.WithLabelValues(result).Inc()
}

// SetConfiguredCredentials records how many credentials are present.
func (m *Metrics) SetConfiguredCredentials(n int) {
	if m == nil {
		return
	}
	m.ConfiguredCredentials.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
