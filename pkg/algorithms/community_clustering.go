package algorithms

// ClusteringCoefficient computes the local clustering coefficient of every
// node: how close its neighbors are to forming a complete graph
func ClusteringCoefficient(g Topology) []float64 {
	return CountTriangles(g).ClusteringCoefficients
}

// AverageClusteringCoefficient computes the mean local clustering
// coefficient. Nodes with fewer than two neighbors contribute 0.
func AverageClusteringCoefficient(g Topology) float64 {
	return averageOf(ClusteringCoefficient(g))
}

func averageOf(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
