package monitor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
)

// Monitor drives the live view on its own goroutine
type Monitor struct {
	program *tea.Program
	done    chan struct{}
	final   model
	err     error
}

// New creates a monitor for a run on workers workers and nodes nodes. cancel
// is invoked when the user quits the view.
func New(workers, nodes int, cancel context.CancelFunc, opts ...tea.ProgramOption) *Monitor {
	return &Monitor{
		program: tea.NewProgram(newModel(workers, nodes, cancel), opts...),
		done:    make(chan struct{}),
	}
}

// Start runs the event loop. It must be called before Observe or Finish.
func (m *Monitor) Start() {
	go func() {
		defer close(m.done)
		final, err := m.program.Run()
		if fm, ok := final.(model); ok {
			m.final = fm
		}
		m.err = err
	}()
}

// Observe is an algorithms.RoundObserver. It blocks until the view has taken
// the update, or returns at once if the view already exited.
func (m *Monitor) Observe(s algorithms.RoundStatus) {
	unstable := 0
	for _, ok := range s.Stable {
		if !ok {
			unstable++
		}
	}
	m.program.Send(roundMsg{round: s.Round, unstable: unstable, changed: s.Changed})
}

// Finish shows the outcome, waits for the view to exit and returns its error
func (m *Monitor) Finish(res *algorithms.Result, runErr error) error {
	m.program.Send(doneMsg{result: res, err: runErr})
	<-m.done
	return m.err
}

// Rounds returns the last round the view displayed. Valid after Finish.
func (m *Monitor) Rounds() int {
	return m.final.round
}
