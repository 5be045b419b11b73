package algorithms

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-labelprop/pkg/logging"
	"github.com/dd0wney/cluso-labelprop/pkg/metrics"
	"github.com/dd0wney/cluso-labelprop/pkg/parallel"
)

// StopReason records why the coordinator halted the pool
type StopReason string

const (
	StopConverged StopReason = "converged"
	StopMaxRounds StopReason = "max_rounds"
	StopCancelled StopReason = "cancelled"
)

// RoundStatus is what the coordinator sees after every worker has reported
// for a round and before it decides whether to continue
type RoundStatus struct {
	Round   int
	Labels  []int  // committed labels, indexed by node id
	Stable  []bool // per-worker stability flags
	Changed int    // labels committed with a new value this round
}

// RoundObserver receives every RoundStatus. It runs while all workers are
// parked at the check-finish barrier and must not retain Stable.
type RoundObserver func(RoundStatus)

// CoordinatorConfig holds everything a coordinator is constructed with
type CoordinatorConfig struct {
	Workers         int
	CheckCompletion parallel.Waiter
	CheckFinish     parallel.Waiter

	// MaxRounds halts the run after that many rounds; zero means unbounded
	MaxRounds int
	Observer  RoundObserver
	// Snapshot returns the committed labels for the observer
	Snapshot func() []int

	Metrics *metrics.Registry
	Logger  logging.Logger
}

// Coordinator owns the run flag and the per-worker convergence flags. It joins
// only the check-completion and check-finish barriers.
type Coordinator struct {
	ctx             context.Context
	checkCompletion parallel.Waiter
	checkFinish     parallel.Waiter
	maxRounds       int
	observer        RoundObserver
	snapshot        func() []int
	metrics         *metrics.Registry
	logger          logging.Logger

	// each slot is written by its worker before check-completion and read
	// here after it
	stable  []bool
	changed []int

	// written here between check-completion and check-finish, read by
	// workers after check-finish
	running bool

	round  int
	reason StopReason
}

// NewCoordinator creates a coordinator with the run flag set. The context is
// only consulted between rounds.
func NewCoordinator(ctx context.Context, cfg CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	return &Coordinator{
		ctx:             ctx,
		checkCompletion: cfg.CheckCompletion,
		checkFinish:     cfg.CheckFinish,
		maxRounds:       cfg.MaxRounds,
		observer:        cfg.Observer,
		snapshot:        cfg.Snapshot,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger.With(logging.Component("coordinator")),
		stable:          make([]bool, cfg.Workers),
		changed:         make([]int, cfg.Workers),
		running:         true,
	}
}

// Report implements Control
func (c *Coordinator) Report(worker int, stable bool, changed int) {
	c.stable[worker] = stable
	c.changed[worker] = changed
}

// Running implements Control
func (c *Coordinator) Running() bool {
	return c.running
}

// Run drives rounds until it clears the run flag
func (c *Coordinator) Run() error {
	last := time.Now()

	for {
		if err := c.checkCompletion.Wait(); err != nil {
			return fmt.Errorf("coordinator round %d: check-completion barrier: %w", c.round+1, err)
		}
		c.round++
		c.decide(time.Since(last))
		last = time.Now()

		if err := c.checkFinish.Wait(); err != nil {
			return fmt.Errorf("coordinator round %d: check-finish barrier: %w", c.round, err)
		}
		if !c.running {
			return nil
		}
	}
}

// decide runs while every worker is parked between the two check barriers
func (c *Coordinator) decide(elapsed time.Duration) {
	unstable, changed := 0, 0
	for i, ok := range c.stable {
		if !ok {
			unstable++
		}
		changed += c.changed[i]
	}

	if c.observer != nil {
		status := RoundStatus{Round: c.round, Stable: c.stable, Changed: changed}
		if c.snapshot != nil {
			status.Labels = c.snapshot()
		}
		c.observer(status)
	}

	cont := unstable > 0
	switch {
	case !cont:
		c.reason = StopConverged
	case c.maxRounds > 0 && c.round >= c.maxRounds:
		cont = false
		c.reason = StopMaxRounds
	case c.ctx != nil && c.ctx.Err() != nil:
		cont = false
		c.reason = StopCancelled
	}
	c.running = cont

	if c.metrics != nil {
		c.metrics.RecordRound(elapsed, unstable, changed)
	}
	c.logger.Debug("round decided",
		logging.Round(c.round),
		logging.Int("unstable_workers", unstable),
		logging.Int("changed", changed),
		logging.Bool("continue", cont),
	)
}

// Rounds returns the number of completed rounds
func (c *Coordinator) Rounds() int {
	return c.round
}

// StopReason returns why the run halted; empty while running
func (c *Coordinator) StopReason() StopReason {
	return c.reason
}
