package algorithms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-labelprop/pkg/graph"
	"github.com/dd0wney/cluso-labelprop/pkg/logging"
	"github.com/dd0wney/cluso-labelprop/pkg/metrics"
	"github.com/dd0wney/cluso-labelprop/pkg/parallel"
	"github.com/dd0wney/cluso-labelprop/pkg/partition"
)

// Options configures a propagation run
type Options struct {
	Workers   int
	TieBreak  TieBreakPolicy
	Seed      int64 // tie-break seed; zero seeds from the clock
	Stability StabilityCheck
	MaxRounds int // zero means unbounded
	Observer  RoundObserver
	Logger    logging.Logger
	Metrics   *metrics.Registry
}

// Result is the outcome of a propagation run
type Result struct {
	RunID       string                      `json:"run_id" yaml:"run_id"`
	Workers     int                         `json:"workers" yaml:"workers"`
	Rounds      int                         `json:"rounds" yaml:"rounds"`
	Converged   bool                        `json:"converged" yaml:"converged"`
	StopReason  StopReason                  `json:"stop_reason" yaml:"stop_reason"`
	Labels      []int                       `json:"labels" yaml:"labels"`
	Shards      []partition.Shard           `json:"shards" yaml:"shards"`
	Partition   *partition.PartitionMetrics `json:"partition" yaml:"partition"`
	Communities *CommunityDetectionResult   `json:"community_detection" yaml:"community_detection"`
	Duration    time.Duration               `json:"duration" yaml:"duration"`
}

// ErrNilGraph is returned when Run is given no graph
var ErrNilGraph = errors.New("graph is nil")

// Run performs synchronous label propagation on g with a fixed pool of
// opts.Workers workers and one coordinator, mutating g's labels in place.
// ctx is consulted only between rounds; an in-progress round always completes.
func Run(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts.Stability == "" {
		opts.Stability = StabilityTwoRound
	}
	if opts.TieBreak == "" {
		opts.TieBreak = TieBreakRandom
	}
	if !opts.Stability.valid() {
		return nil, fmt.Errorf("unknown stability check %q", opts.Stability)
	}
	if opts.MaxRounds < 0 {
		return nil, fmt.Errorf("max rounds %d: must be non-negative", opts.MaxRounds)
	}

	runID := uuid.New().String()
	logger := logging.OrDefault(opts.Logger).With(logging.RunID(runID))

	shards, err := partition.Partition(g.Len(), opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	strategy, err := partition.NewRangeStrategy(g.Len(), opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	partMetrics := partition.ComputeMetrics(g, strategy)

	tieBreakers := make([]TieBreaker, opts.Workers)
	for i := range tieBreakers {
		if tieBreakers[i], err = NewTieBreaker(opts.TieBreak, opts.Seed, i); err != nil {
			return nil, err
		}
	}

	barriers, all, err := newRoundBarriers(opts.Workers)
	if err != nil {
		return nil, err
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordGraph(g.Len(), g.EdgeCount())
		opts.Metrics.RecordShardCuts(partMetrics.EdgeCuts)
		opts.Metrics.Workers.Set(float64(opts.Workers))
	}

	coord := NewCoordinator(ctx, CoordinatorConfig{
		Workers:         opts.Workers,
		CheckCompletion: barriers.CheckCompletion,
		CheckFinish:     barriers.CheckFinish,
		MaxRounds:       opts.MaxRounds,
		Observer:        opts.Observer,
		Snapshot:        g.Labels,
		Metrics:         opts.Metrics,
		Logger:          logger,
	})

	workers := make([]*Worker, opts.Workers)
	for i, shard := range shards {
		workers[i] = NewWorker(WorkerConfig{
			ID:         i,
			Shard:      shard,
			Labels:     g,
			TieBreaker: tieBreakers[i],
			Stability:  opts.Stability,
			Barriers:   barriers,
			Control:    coord,
			Logger:     logger,
		})
	}

	pool, err := parallel.NewWorkerPool(opts.Workers+1, func(error) {
		for _, b := range all {
			b.Break()
		}
	})
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(logger, "propagation finished",
		logging.Int("workers", opts.Workers),
		logging.Int("nodes", g.Len()),
		logging.Int("edges", g.EdgeCount()),
	)
	logger.Info("propagation started",
		logging.Int("workers", opts.Workers),
		logging.Int("nodes", g.Len()),
		logging.String("tie_break", string(opts.TieBreak)),
		logging.String("stability", string(opts.Stability)),
	)

	for _, w := range workers {
		if err := pool.Go(fmt.Sprintf("worker-%d", w.ID()), w.Run); err != nil {
			return nil, err
		}
	}
	if err := pool.Go("coordinator", coord.Run); err != nil {
		return nil, err
	}

	if err := pool.Wait(); err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("propagation: %w", err)
	}

	labels := g.Labels()
	communities := DetectCommunities(g, labels)
	reason := coord.StopReason()

	if opts.Metrics != nil {
		opts.Metrics.RecordRun(string(reason), len(communities.Communities), communities.Modularity)
		opts.Metrics.UpdateSystemMetrics()
	}

	elapsed := timer.End(
		logging.Round(coord.Rounds()),
		logging.String("stop_reason", string(reason)),
		logging.Int("communities", len(communities.Communities)),
		logging.Float64("modularity", communities.Modularity),
	)
	if reason != StopConverged {
		logger.Warn("propagation stopped before consensus",
			logging.Round(coord.Rounds()),
			logging.String("stop_reason", string(reason)),
		)
	}

	return &Result{
		RunID:       runID,
		Workers:     opts.Workers,
		Rounds:      coord.Rounds(),
		Converged:   reason == StopConverged,
		StopReason:  reason,
		Labels:      labels,
		Shards:      shards,
		Partition:   partMetrics,
		Communities: communities,
		Duration:    elapsed,
	}, nil
}

// newRoundBarriers allocates the four barriers: compute and store for the
// workers, the two check barriers for workers plus the coordinator
func newRoundBarriers(workers int) (Barriers, []*parallel.Barrier, error) {
	counts := []int{workers, workers, workers + 1, workers + 1}
	all := make([]*parallel.Barrier, len(counts))
	for i, n := range counts {
		b, err := parallel.NewBarrier(n)
		if err != nil {
			return Barriers{}, nil, err
		}
		all[i] = b
	}

	return Barriers{
		Compute:         all[0],
		Store:           all[1],
		CheckCompletion: all[2],
		CheckFinish:     all[3],
	}, all, nil
}
