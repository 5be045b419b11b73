package algorithms

import (
	"fmt"
	"math/rand"
	"time"
)

// TieBreaker picks one label out of the labels tied for the highest neighbor
// count. Candidates are sorted ascending and never empty. Implementations are
// used by a single worker and need not be safe for concurrent use.
type TieBreaker interface {
	Pick(candidates []int) int
}

// RandomTieBreak draws uniformly over the tied labels
type RandomTieBreak struct {
	rng *rand.Rand
}

// NewRandomTieBreak creates a uniform tie breaker. Seed zero seeds from the clock.
func NewRandomTieBreak(seed int64) *RandomTieBreak {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomTieBreak{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly chosen candidate
func (r *RandomTieBreak) Pick(candidates []int) int {
	if len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[r.rng.Intn(len(candidates))]
}

// LowestLabelTieBreak always picks the smallest tied label
type LowestLabelTieBreak struct{}

// Pick returns the smallest candidate
func (LowestLabelTieBreak) Pick(candidates []int) int {
	lowest := candidates[0]
	for _, c := range candidates[1:] {
		if c < lowest {
			lowest = c
		}
	}
	return lowest
}

// TieBreakPolicy names a TieBreaker implementation
type TieBreakPolicy string

const (
	TieBreakRandom TieBreakPolicy = "random"
	TieBreakLowest TieBreakPolicy = "lowest"
)

// TieBreakPolicies lists the accepted policy names
var TieBreakPolicies = []string{string(TieBreakRandom), string(TieBreakLowest)}

// NewTieBreaker creates the tie breaker for one worker. Random breakers get
// distinct streams per worker derived from seed.
func NewTieBreaker(policy TieBreakPolicy, seed int64, worker int) (TieBreaker, error) {
	switch policy {
	case TieBreakRandom, "":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandomTieBreak(seed + int64(worker)*7919), nil
	case TieBreakLowest:
		return LowestLabelTieBreak{}, nil
	default:
		return nil, fmt.Errorf("unknown tie-break policy %q", policy)
	}
}
