package partition

// Graph is the read-only topology needed to measure a partition
type Graph interface {
	Len() int
	Neighbors(id int) []int
}

// PartitionMetrics contains partitioning quality metrics
type PartitionMetrics struct {
	PartitionSizes []int `json:"partition_sizes" yaml:"partition_sizes"`
	// Edges leaving each shard
	EdgeCuts []int `json:"edge_cuts" yaml:"edge_cuts"`
	// 0-1 (1 = perfect balance)
	LoadBalance float64 `json:"load_balance" yaml:"load_balance"`
	// Fraction of edges crossing shards
	CutRatio float64 `json:"cut_ratio" yaml:"cut_ratio"`
}

// ComputeMetrics analyzes partition quality. Cross-shard edges are where
// workers read labels they do not own.
func ComputeMetrics(g Graph, strategy Strategy) *PartitionMetrics {
	partCount := strategy.GetPartitionCount()
	sizes := make([]int, partCount)
	cuts := make([]int, partCount)

	nodeCount := g.Len()
	totalEdges := 0
	totalCuts := 0

	for id := 0; id < nodeCount; id++ {
		part := strategy.GetPartition(id)
		sizes[part]++

		for _, n := range g.Neighbors(id) {
			// each undirected edge is visited from both ends
			if n > id {
				totalEdges++
			}
			if other := strategy.GetPartition(n); other != part {
				cuts[part]++
				if n > id {
					totalCuts++
				}
			}
		}
	}

	// Normalize variance from perfect balance to 0-1
	loadBalance := 1.0
	if nodeCount > 0 {
		avgSize := float64(nodeCount) / float64(partCount)
		variance := 0.0
		for _, size := range sizes {
			diff := float64(size) - avgSize
			variance += diff * diff
		}
		variance /= float64(partCount)
		loadBalance = 1.0 / (1.0 + variance/avgSize)
	}

	cutRatio := 0.0
	if totalEdges > 0 {
		cutRatio = float64(totalCuts) / float64(totalEdges)
	}

	return &PartitionMetrics{
		PartitionSizes: sizes,
		EdgeCuts:       cuts,
		LoadBalance:    loadBalance,
		CutRatio:       cutRatio,
	}
}
