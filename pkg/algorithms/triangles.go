package algorithms

// TriangleCountResult holds triangle counts per node and for the whole graph,
// along with the local clustering coefficients computed in the same pass.
type TriangleCountResult struct {
	PerNode                []int
	GlobalCount            int
	ClusteringCoefficients []float64
}

// CountTriangles counts triangles of an undirected topology. For each node u
// it checks every pair (v,w) of u's neighbors for an edge; each triangle is
// counted once per participating node, so GlobalCount = sum(PerNode) / 3.
func CountTriangles(g Topology) *TriangleCountResult {
	n := g.Len()

	neighborSets := make([]map[int]struct{}, n)
	for u := 0; u < n; u++ {
		set := make(map[int]struct{}, len(g.Neighbors(u)))
		for _, v := range g.Neighbors(u) {
			if v != u {
				set[v] = struct{}{}
			}
		}
		neighborSets[u] = set
	}

	perNode := make([]int, n)
	total := 0
	for u := 0; u < n; u++ {
		neighbors := g.Neighbors(u)
		count := 0
		for i := 0; i < len(neighbors); i++ {
			v := neighbors[i]
			for j := i + 1; j < len(neighbors); j++ {
				if _, ok := neighborSets[v][neighbors[j]]; ok {
					count++
				}
			}
		}
		perNode[u] = count
		total += count
	}

	coefficients := make([]float64, n)
	for u := 0; u < n; u++ {
		k := len(neighborSets[u])
		if k < 2 {
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[u] = float64(perNode[u]) / float64(possible)
	}

	return &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
	}
}
