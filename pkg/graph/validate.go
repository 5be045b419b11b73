package graph

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrAsymmetric is returned when a neighbor relation appears on one side only
var ErrAsymmetric = errors.New("asymmetric adjacency")

// Validate checks the structural invariants: neighbor ids in range, no self
// loops, no duplicate edges, and every relation present on both endpoints.
func (g *Graph) Validate() error {
	sets := make([]mapset.Set[int], len(g.nodes))
	total := 0

	for i := range g.nodes {
		node := &g.nodes[i]
		if node.ID != i {
			return fmt.Errorf("node at index %d has id %d: %w", i, node.ID, ErrInvalidNode)
		}

		set := mapset.NewThreadUnsafeSetWithSize[int](len(node.Neighbors))
		for _, n := range node.Neighbors {
			if !g.valid(n) {
				return fmt.Errorf("node %d neighbor %d: %w", i, n, ErrInvalidNode)
			}
			if n == i {
				return fmt.Errorf("node %d: %w", i, ErrSelfLoop)
			}
			if !set.Add(n) {
				return fmt.Errorf("edge (%d, %d): %w", i, n, ErrDuplicateEdge)
			}
		}
		sets[i] = set
		total += len(node.Neighbors)
	}

	for i, set := range sets {
		missing := -1
		set.Each(func(n int) bool {
			if !sets[n].Contains(i) {
				missing = n
				return true
			}
			return false
		})
		if missing >= 0 {
			return fmt.Errorf("edge (%d, %d): %w", i, missing, ErrAsymmetric)
		}
	}

	if total != 2*g.edges {
		return fmt.Errorf("adjacency holds %d entries for %d edges: %w", total, g.edges, ErrAsymmetric)
	}
	return nil
}
