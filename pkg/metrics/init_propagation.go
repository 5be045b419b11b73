package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPropagationMetrics() {
	r.Workers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_workers",
			Help: "Number of propagation workers in the current run",
		},
	)

	r.RoundsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "labelprop_rounds_total",
			Help: "Total number of completed propagation rounds",
		},
	)

	r.RoundDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "labelprop_round_duration_seconds",
			Help:    "Wall time between consecutive check-completion barriers",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.UnstableWorkers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_unstable_workers",
			Help: "Workers that reported an unstable shard in the last round",
		},
	)

	r.LabelChangesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "labelprop_label_changes_total",
			Help: "Total number of committed label changes",
		},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "labelprop_runs_total",
			Help: "Completed runs by stop reason",
		},
		[]string{"reason"},
	)

	r.Communities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_communities",
			Help: "Distinct labels after the last run",
		},
	)

	r.Modularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_modularity",
			Help: "Modularity of the community assignment after the last run",
		},
	)
}
