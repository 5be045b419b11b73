package algorithms

import "slices"

// LabelView is read access to node labels and adjacency
type LabelView interface {
	Label(id int) int
	Neighbors(id int) []int
}

// Voter computes majority labels with reusable scratch space. Not safe for
// concurrent use; each worker owns one.
type Voter struct {
	counts map[int]int
	tied   []int
	tb     TieBreaker
}

// NewVoter creates a voter that resolves ties with tb
func NewVoter(tb TieBreaker) *Voter {
	return &Voter{
		counts: make(map[int]int),
		tb:     tb,
	}
}

// Vote returns the next label for node id: its current label when it has no
// neighbors, otherwise the most frequent neighbor label with ties resolved by
// the voter's TieBreaker.
func (v *Voter) Vote(view LabelView, id int) int {
	neighbors := view.Neighbors(id)
	if len(neighbors) == 0 {
		return view.Label(id)
	}

	clear(v.counts)
	best := 0
	for _, n := range neighbors {
		label := view.Label(n)
		v.counts[label]++
		if c := v.counts[label]; c > best {
			best = c
		}
	}

	v.tied = v.tied[:0]
	for label, c := range v.counts {
		if c == best {
			v.tied = append(v.tied, label)
		}
	}
	if len(v.tied) == 1 {
		return v.tied[0]
	}

	// map order is random; sort so seeded tie breakers are reproducible
	slices.Sort(v.tied)
	return v.tb.Pick(v.tied)
}

// Majority is the one-shot form of Voter.Vote
func Majority(view LabelView, id int, tb TieBreaker) int {
	return NewVoter(tb).Vote(view, id)
}
