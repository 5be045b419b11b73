package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
	"github.com/dd0wney/cluso-labelprop/pkg/config"
	"github.com/dd0wney/cluso-labelprop/pkg/graph"
	"github.com/dd0wney/cluso-labelprop/pkg/logging"
	"github.com/dd0wney/cluso-labelprop/pkg/metrics"
	"github.com/dd0wney/cluso-labelprop/pkg/monitor"
	"github.com/dd0wney/cluso-labelprop/pkg/report"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	// SIGINT/SIGTERM stop the run at the next round boundary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "labelprop: %v\n", err)
		return exitUsage
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Watch && level < logging.WarnLevel {
		// keep the log stream from tearing the live view
		level = logging.WarnLevel
	}
	logger := logging.NewJSONLogger(stderr, level).With(logging.Component("labelprop"))
	logging.SetDefaultLogger(logger)

	// edge list and label table only accompany the text report
	verbose := cfg.Format == config.FormatText && !cfg.Quiet && !cfg.Watch
	if verbose {
		fmt.Fprintf(stdout, "Starting label propagation with %d threads and %d nodes\n", cfg.Threads, cfg.Nodes)
	}

	buildOpts := graph.BuildOptions{Seed: cfg.Seed}
	if verbose {
		buildOpts.OnEdge = report.EdgePrinter(stdout)
	}
	timer := logging.StartTimer(logger, "graph built", logging.Int("nodes", cfg.Nodes), logging.Float64("probability", cfg.Probability))
	g, err := graph.Build(cfg.Nodes, cfg.Probability, buildOpts)
	if err != nil {
		timer.EndError(err)
		return exitFailed
	}
	timer.End(logging.Int("edges", g.EdgeCount()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := metrics.NewRegistry()
	opts := cfg.Options()
	opts.Logger = logger
	opts.Metrics = reg

	var mon *monitor.Monitor
	var rounds *report.RoundPrinter
	switch {
	case cfg.Watch:
		mon = monitor.New(cfg.Threads, g.Len(), cancel, tea.WithOutput(stderr))
		mon.Start()
		opts.Observer = mon.Observe
	case verbose:
		rounds = report.NewRoundPrinter(stdout)
		opts.Observer = rounds.Observe
	}

	res, err := algorithms.Run(ctx, g, opts)
	if mon != nil {
		if merr := mon.Finish(res, err); merr != nil {
			logger.Warn("live monitor failed", logging.Error(merr))
		}
	}
	if err != nil {
		logger.Error("propagation failed", logging.Error(err))
		return exitFailed
	}
	if rounds != nil && rounds.Err() != nil {
		logger.Warn("label table incomplete", logging.Error(rounds.Err()))
	}

	snapshot, err := reg.Snapshot()
	if err != nil {
		logger.Warn("metrics snapshot failed", logging.Error(err))
	}

	rep := &report.Report{
		Config:   cfg,
		Nodes:    g.Len(),
		Edges:    g.EdgeCount(),
		Result:   res,
		Metrics:  snapshot,
		Topology: algorithms.Summarize(g),
	}

	code := exitOK
	if cfg.Verify {
		rep.Verification, err = report.Verify(g, res, opts.Stability, opts.MaxRounds)
		switch {
		case err != nil:
			logger.Error("verification failed", logging.Error(err))
			code = exitFailed
		case !rep.Verification.Matched:
			logger.Error("parallel run differs from sequential run",
				logging.Round(res.Rounds),
				logging.Int("sequential_rounds", rep.Verification.Rounds),
			)
			code = exitFailed
		}
	}

	if err := report.Render(stdout, cfg.Format, rep); err != nil {
		logger.Error("failed to write report", logging.Error(err))
		return exitFailed
	}
	return code
}
