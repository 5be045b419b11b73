package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for label propagation runs
type Registry struct {
	// Graph Metrics
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge
	ShardCutEdges *prometheus.GaugeVec

	// Propagation Metrics
	Workers           prometheus.Gauge
	RoundsTotal       prometheus.Counter
	RoundDuration     prometheus.Histogram
	UnstableWorkers   prometheus.Gauge
	LabelChangesTotal prometheus.Counter
	RunsTotal         *prometheus.CounterVec
	Communities       prometheus.Gauge
	Modularity        prometheus.Gauge

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGraphMetrics()
	r.initPropagationMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
