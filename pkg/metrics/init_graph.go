package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_graph_nodes",
			Help: "Number of nodes in the propagated graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "labelprop_graph_edges",
			Help: "Number of undirected edges in the propagated graph",
		},
	)

	r.ShardCutEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "labelprop_shard_cut_edges",
			Help: "Edges leaving each worker shard",
		},
		[]string{"shard"},
	)
}
