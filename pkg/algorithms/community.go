package algorithms

import (
	"sort"
)

// Topology is the read-only adjacency needed to score communities
type Topology interface {
	Len() int
	Neighbors(id int) []int
	EdgeCount() int
}

// DetectCommunities groups nodes by final label. Communities are ordered by
// size (largest first), then by label; community IDs follow that order.
func DetectCommunities(g Topology, labels []int) *CommunityDetectionResult {
	communityNodes := make(map[int][]int)
	for id, label := range labels {
		communityNodes[label] = append(communityNodes[label], id)
	}

	communities := make([]*Community, 0, len(communityNodes))
	for label, nodes := range communityNodes {
		communities = append(communities, &Community{
			Label: label,
			Nodes: nodes,
			Size:  len(nodes),
		})
	}
	sort.Slice(communities, func(a, b int) bool {
		if communities[a].Size != communities[b].Size {
			return communities[a].Size > communities[b].Size
		}
		return communities[a].Label < communities[b].Label
	})

	nodeCommunity := make([]int, len(labels))
	for i, c := range communities {
		c.ID = i
		for _, id := range c.Nodes {
			nodeCommunity[id] = i
		}
	}

	for _, c := range communities {
		c.Density = density(g, c, nodeCommunity)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
		Modularity:    Modularity(g, nodeCommunity),
	}
}

// density is the fraction of possible intra-community edges present
func density(g Topology, c *Community, nodeCommunity []int) float64 {
	if c.Size < 2 {
		return 0
	}
	internal := 0
	for _, id := range c.Nodes {
		for _, n := range g.Neighbors(id) {
			if nodeCommunity[n] == c.ID && n > id {
				internal++
			}
		}
	}
	possible := c.Size * (c.Size - 1) / 2
	return float64(internal) / float64(possible)
}

// Modularity computes Newman modularity of an undirected, unweighted graph:
// the sum over communities of L_c/m - (d_c/2m)^2, where L_c counts internal
// edges and d_c sums member degrees. Graphs without edges score 0.
func Modularity(g Topology, nodeCommunity []int) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	internal := make(map[int]float64)
	degrees := make(map[int]float64)
	for id := 0; id < g.Len(); id++ {
		c := nodeCommunity[id]
		neighbors := g.Neighbors(id)
		degrees[c] += float64(len(neighbors))
		for _, n := range neighbors {
			if n > id && nodeCommunity[n] == c {
				internal[c]++
			}
		}
	}

	q := 0.0
	for c, d := range degrees {
		share := d / (2 * m)
		q += internal[c]/m - share*share
	}
	return q
}
