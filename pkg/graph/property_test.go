package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBuildInvariants checks the structural invariants over many random graphs
func TestBuildInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("generated graphs are symmetric without loops or duplicates", prop.ForAll(
		func(n int, p float64, seed int64) bool {
			g, err := Build(n, p, BuildOptions{Seed: seed | 1})
			if err != nil {
				return false
			}
			return g.Validate() == nil
		},
		gen.IntRange(0, 60),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	properties.Property("edge (i, j) exists iff (j, i) exists", prop.ForAll(
		func(n int, seed int64) bool {
			g, err := Build(n, DefaultProbability, BuildOptions{Seed: seed | 1})
			if err != nil {
				return false
			}
			adj := make(map[[2]int]bool)
			for i := 0; i < g.Len(); i++ {
				for _, j := range g.Neighbors(i) {
					adj[[2]int{i, j}] = true
				}
			}
			for k := range adj {
				if !adj[[2]int{k[1], k[0]}] || k[0] == k[1] {
					return false
				}
			}
			return len(adj) == 2*g.EdgeCount()
		},
		gen.IntRange(1, 40),
		gen.Int64(),
	))

	properties.Property("edge count never exceeds n(n-1)/2", prop.ForAll(
		func(n int, seed int64) bool {
			g, err := Build(n, 1, BuildOptions{Seed: seed | 1})
			if err != nil {
				return false
			}
			return g.EdgeCount() == n*(n-1)/2
		},
		gen.IntRange(0, 30),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
