package algorithms

// TopologySummary describes the structure of the graph a run operates on
type TopologySummary struct {
	Nodes             int     `json:"nodes" yaml:"nodes"`
	Edges             int     `json:"edges" yaml:"edges"`
	Components        int     `json:"components" yaml:"components"`
	LargestComponent  int     `json:"largest_component" yaml:"largest_component"`
	IsolatedNodes     int     `json:"isolated_nodes" yaml:"isolated_nodes"`
	MaxDegree         int     `json:"max_degree" yaml:"max_degree"`
	AverageDegree     float64 `json:"average_degree" yaml:"average_degree"`
	Triangles         int     `json:"triangles" yaml:"triangles"`
	AverageClustering float64 `json:"average_clustering" yaml:"average_clustering"`
	// Bipartite graphs let synchronous propagation swap labels between the
	// two sides every round
	Bipartite bool `json:"bipartite" yaml:"bipartite"`
}

// Summarize computes the structural summary of g
func Summarize(g Topology) *TopologySummary {
	components := ConnectedComponents(g)
	triangles := CountTriangles(g)

	s := &TopologySummary{
		Nodes:             g.Len(),
		Edges:             g.EdgeCount(),
		Components:        len(components),
		Triangles:         triangles.GlobalCount,
		AverageClustering: averageOf(triangles.ClusteringCoefficients),
		Bipartite:         IsBipartite(g),
	}
	for _, members := range components {
		if len(members) > s.LargestComponent {
			s.LargestComponent = len(members)
		}
	}
	for id := 0; id < g.Len(); id++ {
		degree := len(g.Neighbors(id))
		if degree == 0 {
			s.IsolatedNodes++
		}
		if degree > s.MaxDegree {
			s.MaxDegree = degree
		}
	}
	if s.Nodes > 0 {
		s.AverageDegree = 2 * float64(s.Edges) / float64(s.Nodes)
	}
	return s
}

// IsConnected checks if every node is reachable from every other node.
// Empty and single-node graphs are connected.
func IsConnected(g Topology) bool {
	return len(ConnectedComponents(g)) <= 1
}

// IsBipartite checks if the graph can be colored with two colors
// such that no two adjacent nodes have the same color
func IsBipartite(g Topology) bool {
	// -1 = uncolored, 0 = color A, 1 = color B
	color := make([]int, g.Len())
	for i := range color {
		color[i] = -1
	}

	// BFS coloring for each component
	for start := range color {
		if color[start] != -1 {
			continue
		}

		queue := []int{start}
		color[start] = 0
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, n := range g.Neighbors(current) {
				switch color[n] {
				case -1:
					color[n] = 1 - color[current]
					queue = append(queue, n)
				case color[current]:
					return false
				}
			}
		}
	}
	return true
}
