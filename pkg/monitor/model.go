// Package monitor is a live terminal view of a propagation run. It shows the
// current round, how many workers are still unstable and how many labels the
// last rounds changed. Quitting the view cancels the run at the next round
// boundary.
package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
)

// historyLen is the number of rounds kept for the change sparkline
const historyLen = 32

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginBottom(1)

	stableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	unstableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)
)

var sparks = []rune("▁▂▃▄▅▆▇█")

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "stop after this round"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// roundMsg carries one coordinator decision into the event loop
type roundMsg struct {
	round    int
	unstable int
	changed  int
}

// doneMsg ends the view
type doneMsg struct {
	result *algorithms.Result
	err    error
}

type model struct {
	workers int
	nodes   int
	cancel  context.CancelFunc

	round        int
	unstable     int
	changed      int
	totalChanged int
	history      []int

	stopping bool
	done     bool
	result   *algorithms.Result
	err      error

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

func newModel(workers, nodes int, cancel context.CancelFunc) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))

	return model{
		workers:  workers,
		nodes:    nodes,
		cancel:   cancel,
		unstable: workers,
		spinner:  s,
		help:     help.New(),
		keys:     keys,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.stopping {
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case roundMsg:
		m.round = msg.round
		m.unstable = msg.unstable
		m.changed = msg.changed
		m.totalChanged += msg.changed
		m.history = append(m.history, msg.changed)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
		return m, nil

	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("label propagation · %d nodes · %d workers", m.nodes, m.workers)))
	b.WriteString("\n")

	body := strings.Join([]string{
		m.statusLine(),
		m.stabilityBar() + fmt.Sprintf("  %d/%d workers stable", m.workers-m.unstable, m.workers),
		fmt.Sprintf("labels changed  last %d  total %d", m.changed, m.totalChanged),
		"history  " + sparkline(m.history),
	}, "\n")
	b.WriteString(boxStyle.Render(body))
	b.WriteString("\n")

	if !m.done {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) statusLine() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("failed: " + m.err.Error())
	case m.done && m.result != nil && m.result.Converged:
		return successStyle.Render(fmt.Sprintf("converged after %d rounds", m.result.Rounds))
	case m.done && m.result != nil:
		return warnStyle.Render(fmt.Sprintf("stopped (%s) after %d rounds", m.result.StopReason, m.result.Rounds))
	case m.stopping:
		return warnStyle.Render(fmt.Sprintf("stopping after round %d", m.round))
	default:
		return fmt.Sprintf("%s round %d", m.spinner.View(), m.round)
	}
}

func (m model) stabilityBar() string {
	stable := m.workers - m.unstable
	var b strings.Builder
	for i := 0; i < m.workers; i++ {
		if i < stable {
			b.WriteString(stableStyle.Render("■"))
		} else {
			b.WriteString(unstableStyle.Render("□"))
		}
	}
	return b.String()
}

// sparkline scales values to the block glyphs relative to the largest one
func sparkline(values []int) string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if peak > 0 {
			idx = v * (len(sparks) - 1) / peak
		}
		out[i] = sparks[idx]
	}
	return string(out)
}
