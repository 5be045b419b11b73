package graph

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// DefaultProbability is the independent edge probability used by Build
const DefaultProbability = 0.25

// BuildOptions configures random graph generation
type BuildOptions struct {
	// Seed for the pair sampler. Zero seeds from the clock.
	Seed int64

	// OnEdge is called once for each created edge, in creation order
	OnEdge func(Edge)
}

// Build generates an independent-edge random graph on n nodes. Every unordered
// pair (i, j), i < j, draws one uniform value and is linked when the value is
// below p.
func Build(n int, p float64, opts BuildOptions) (*Graph, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("edge probability %g: must be within [0, 1]", p)
	}

	g, err := New(n)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g.link(i, j)
				if opts.OnEdge != nil {
					opts.OnEdge(Edge{From: i, To: j})
				}
			}
		}
	}

	return g, nil
}

// FromEdges builds a graph on n nodes with exactly the given edges. Edge
// direction is ignored; out of range ids, self loops and repeated pairs are
// rejected.
func FromEdges(n int, edges []Edge) (*Graph, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}

	for _, e := range edges {
		if err := g.addEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Complete builds the complete graph on n nodes
func Complete(n int) (*Graph, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			g.link(i, j)
		}
	}
	return g, nil
}

// Path builds the path 0 - 1 - ... - n-1
func Path(n int) (*Graph, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < n; i++ {
		g.link(i, i+1)
	}
	return g, nil
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].From != edges[b].From {
			return edges[a].From < edges[b].From
		}
		return edges[a].To < edges[b].To
	})
}
