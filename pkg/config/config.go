// Package config holds the run configuration of the labelprop command:
// defaults, command-line parsing, environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
	"github.com/dd0wney/cluso-labelprop/pkg/graph"
	"github.com/dd0wney/cluso-labelprop/pkg/logging"
	"github.com/dd0wney/cluso-labelprop/pkg/validation"
)

// Output formats for the final report
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted report formats
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// EnvLogLevel names the environment variable that sets the log level
const EnvLogLevel = "LOG_LEVEL"

// Config is the complete configuration of one run
type Config struct {
	Threads     int     `json:"threads" yaml:"threads" validate:"gte=1"`
	Nodes       int     `json:"nodes" yaml:"nodes" validate:"gte=1"`
	Probability float64 `json:"probability" yaml:"probability" validate:"gte=0,lte=1"`
	Seed        int64   `json:"seed" yaml:"seed"` // zero seeds from the clock

	TieBreak  string `json:"tie_break" yaml:"tie_break" validate:"oneof=random lowest"`
	Stability string `json:"stability" yaml:"stability" validate:"oneof=two-round one-round"`
	MaxRounds int    `json:"max_rounds" yaml:"max_rounds" validate:"gte=0"` // 0 = unbounded

	Format   string `json:"format" yaml:"format" validate:"oneof=text json yaml"`
	Quiet    bool   `json:"quiet" yaml:"quiet"`
	Watch    bool   `json:"watch" yaml:"watch"`
	Verify   bool   `json:"verify" yaml:"verify"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Default returns the configuration used for every flag left unset. Threads
// and Nodes have no usable default and must be supplied.
func Default() *Config {
	return &Config{
		Probability: graph.DefaultProbability,
		TieBreak:    string(algorithms.TieBreakRandom),
		Stability:   string(algorithms.StabilityTwoRound),
		Format:      FormatText,
		LogLevel:    logging.InfoLevel.String(),
	}
}

// FromFlags parses command-line arguments (without the program name) over
// Default. Usage and parse errors are written to output.
func FromFlags(args []string, output io.Writer) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("labelprop", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Threads, "t", cfg.Threads, "number of worker threads (required)")
	fs.IntVar(&cfg.Nodes, "s", cfg.Nodes, "number of nodes in the random graph (required)")
	fs.Float64Var(&cfg.Probability, "p", cfg.Probability, "independent edge probability")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for graph and tie-break (0 = time based)")
	fs.StringVar(&cfg.TieBreak, "tie", cfg.TieBreak, "tie-break policy: "+strings.Join(algorithms.TieBreakPolicies, "|"))
	fs.StringVar(&cfg.Stability, "stability", cfg.Stability, "stability check: "+strings.Join(algorithms.StabilityChecks, "|"))
	fs.IntVar(&cfg.MaxRounds, "max-rounds", cfg.MaxRounds, "stop after this many rounds (0 = until converged)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "report format: "+strings.Join(Formats, "|"))
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress the edge list and per-round label table")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "show a live round monitor instead of the label table")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "rerun sequentially and compare (requires -tie lowest)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

// Load parses args, applies environment overrides and validates the result
func Load(args []string, output io.Writer) (*Config, error) {
	cfg, err := FromFlags(args, output)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.LogLevel = validation.DefaultOr(strings.TrimSpace(getenv(EnvLogLevel)), c.LogLevel)
}

// Validate checks field ranges and cross-field constraints. All failures are
// reported together.
func (c *Config) Validate() error {
	v := validation.NewConfigValidator("Config").Struct(c)

	// one-round stability never settles on a period-two cycle
	v.When(c.Stability == string(algorithms.StabilityOneRound), func(cv *validation.ConfigValidator) {
		cv.Positive("MaxRounds", c.MaxRounds)
	})
	// random tie-breaks depend on how nodes are sharded
	v.When(c.Verify, func(cv *validation.ConfigValidator) {
		cv.OneOf("TieBreak", c.TieBreak, []string{string(algorithms.TieBreakLowest)})
	})

	return v.Validate()
}

// Options converts the configuration into engine options
func (c *Config) Options() algorithms.Options {
	return algorithms.Options{
		Workers:   c.Threads,
		TieBreak:  algorithms.TieBreakPolicy(c.TieBreak),
		Seed:      c.Seed,
		Stability: algorithms.StabilityCheck(c.Stability),
		MaxRounds: c.MaxRounds,
	}
}
