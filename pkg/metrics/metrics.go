package metrics

import (
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RecordGraph records the size of the graph being propagated
func (r *Registry) RecordGraph(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordShardCuts records the number of cut edges per shard
func (r *Registry) RecordShardCuts(cuts []int) {
	for i, c := range cuts {
		r.ShardCutEdges.WithLabelValues(strconv.Itoa(i)).Set(float64(c))
	}
}

// RecordRound records one completed coordinator round
func (r *Registry) RecordRound(duration time.Duration, unstableWorkers, labelChanges int) {
	r.RoundsTotal.Inc()
	r.RoundDuration.Observe(duration.Seconds())
	r.UnstableWorkers.Set(float64(unstableWorkers))
	r.LabelChangesTotal.Add(float64(labelChanges))
}

// RecordRun records the outcome of a finished run
func (r *Registry) RecordRun(reason string, communities int, modularity float64) {
	r.RunsTotal.WithLabelValues(reason).Inc()
	r.Communities.Set(float64(communities))
	r.Modularity.Set(modularity)
}

// UpdateSystemMetrics samples goroutine count and heap usage
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// Snapshot gathers every counter and gauge into a flat map keyed by metric
// name, with labels appended as name{k=v}. Histograms report their sample count
// under name_count.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			if pairs := m.GetLabel(); len(pairs) > 0 {
				parts := make([]string, 0, len(pairs))
				for _, lp := range pairs {
					parts = append(parts, lp.GetName()+"="+lp.GetValue())
				}
				sort.Strings(parts)
				key += "{" + strings.Join(parts, ",") + "}"
			}

			switch {
			case m.Counter != nil:
				out[key] = m.GetCounter().GetValue()
			case m.Gauge != nil:
				out[key] = m.GetGauge().GetValue()
			case m.Histogram != nil:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
