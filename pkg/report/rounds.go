package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
	"github.com/dd0wney/cluso-labelprop/pkg/graph"
)

// RoundPrinter writes the label table of every round
type RoundPrinter struct {
	w   io.Writer
	err error
}

// NewRoundPrinter creates a printer writing to w
func NewRoundPrinter(w io.Writer) *RoundPrinter {
	return &RoundPrinter{w: w}
}

// Observe is an algorithms.RoundObserver
func (p *RoundPrinter) Observe(s algorithms.RoundStatus) {
	if p.err != nil {
		return
	}

	unstable := 0
	for _, ok := range s.Stable {
		if !ok {
			unstable++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "round %d: %d of %d workers unstable, %d labels changed\n",
		s.Round, unstable, len(s.Stable), s.Changed)
	for id, label := range s.Labels {
		fmt.Fprintf(&b, "\tlabel(%d) = %d\n", id, label)
	}
	_, p.err = io.WriteString(p.w, b.String())
}

// Err returns the first write error; later rounds are dropped after it
func (p *RoundPrinter) Err() error {
	return p.err
}

// EdgePrinter returns a graph.BuildOptions.OnEdge callback printing each edge
// as "i <-> j". Safe for concurrent use.
func EdgePrinter(w io.Writer) func(graph.Edge) {
	var mu sync.Mutex
	return func(e graph.Edge) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, e)
	}
}
