package algorithms

import "fmt"

// SequentialOptions configures RunSequential
type SequentialOptions struct {
	Stability StabilityCheck
	MaxRounds int // zero means unbounded
}

// SequentialResult is the outcome of RunSequential
type SequentialResult struct {
	Labels    []int
	Rounds    int
	Converged bool
}

// RunSequential performs synchronous label propagation on a single goroutine
// with the lowest-label tie-break. Every round reads only the labels of the
// previous round, so the outcome matches a parallel Run with TieBreakLowest
// for any worker count. initial is not modified; nil starts every node in its
// own community.
func RunSequential(g Topology, initial []int, opts SequentialOptions) (*SequentialResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts.Stability == "" {
		opts.Stability = StabilityTwoRound
	}
	if !opts.Stability.valid() {
		return nil, fmt.Errorf("unknown stability check %q", opts.Stability)
	}
	if initial != nil && len(initial) != g.Len() {
		return nil, fmt.Errorf("initial labels: got %d, want %d", len(initial), g.Len())
	}

	labels := make([]int, g.Len())
	for id := range labels {
		labels[id] = id
	}
	if initial != nil {
		copy(labels, initial)
	}
	previous := append([]int(nil), labels...)
	voter := NewVoter(LowestLabelTieBreak{})

	for round := 1; ; round++ {
		view := sequentialView{g: g, labels: labels}
		next := make([]int, len(labels))
		stable := true
		for id := range next {
			next[id] = voter.Vote(view, id)

			reference := previous[id]
			if opts.Stability == StabilityOneRound {
				reference = labels[id]
			}
			if next[id] != reference {
				stable = false
			}
		}

		previous, labels = labels, next
		if stable || (opts.MaxRounds > 0 && round >= opts.MaxRounds) {
			return &SequentialResult{Labels: labels, Rounds: round, Converged: stable}, nil
		}
	}
}

// sequentialView reads labels from a plain slice over g's adjacency
type sequentialView struct {
	g      Topology
	labels []int
}

func (v sequentialView) Label(id int) int       { return v.labels[id] }
func (v sequentialView) Neighbors(id int) []int { return v.g.Neighbors(id) }
