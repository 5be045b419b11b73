// Package report renders the console output of a propagation run: the edge
// list, the per-round label table and the final report.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
	"github.com/dd0wney/cluso-labelprop/pkg/config"
)

// ErrUnknownFormat is returned by Render for formats other than text, json
// and yaml
var ErrUnknownFormat = errors.New("unknown report format")

// Report is everything printed once a run has finished
type Report struct {
	Config  *config.Config     `json:"config,omitempty" yaml:"config,omitempty"`
	Nodes   int                `json:"nodes" yaml:"nodes"`
	Edges   int                `json:"edges" yaml:"edges"`
	Result  *algorithms.Result `json:"result" yaml:"result"`
	Metrics map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	Topology     *algorithms.TopologySummary `json:"topology,omitempty" yaml:"topology,omitempty"`
	Verification *Verification               `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// Verification records a comparison of the parallel run against the
// single-goroutine propagation of the same graph
type Verification struct {
	Rounds  int  `json:"rounds" yaml:"rounds"`
	Matched bool `json:"matched" yaml:"matched"`
}

// Verify reruns g sequentially from its initial labels and compares the
// outcome with res. Only runs with the lowest-label tie-break are
// reproducible this way.
func Verify(g algorithms.Topology, res *algorithms.Result, stability algorithms.StabilityCheck, maxRounds int) (*Verification, error) {
	seq, err := algorithms.RunSequential(g, nil, algorithms.SequentialOptions{
		Stability: stability,
		MaxRounds: maxRounds,
	})
	if err != nil {
		return nil, fmt.Errorf("sequential run: %w", err)
	}

	matched := seq.Rounds == res.Rounds && len(seq.Labels) == len(res.Labels)
	for i := 0; matched && i < len(seq.Labels); i++ {
		matched = seq.Labels[i] == res.Labels[i]
	}
	return &Verification{Rounds: seq.Rounds, Matched: matched}, nil
}

// Render writes r to w in the given format. An empty format means text.
func Render(w io.Writer, format string, r *Report) error {
	if r == nil || r.Result == nil {
		return errors.New("report has no result")
	}

	switch format {
	case config.FormatText, "":
		return renderText(w, r)

	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
