package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-labelprop/pkg/logging"
	"github.com/dd0wney/cluso-labelprop/pkg/parallel"
	"github.com/dd0wney/cluso-labelprop/pkg/partition"
)

// Labels is the label store a worker computes from and commits to
type Labels interface {
	LabelView
	SetLabel(id, label int)
}

// Control is the worker's view of the coordinator
type Control interface {
	// Report publishes the worker's stability flag and committed change
	// count for the current round. Called before the check-completion barrier.
	Report(worker int, stable bool, changed int)
	// Running reads the run flag. Called after the check-finish barrier.
	Running() bool
}

// Barriers are the four rendezvous points of a round
type Barriers struct {
	Compute         parallel.Waiter // workers only
	Store           parallel.Waiter // workers only
	CheckCompletion parallel.Waiter // workers + coordinator
	CheckFinish     parallel.Waiter // workers + coordinator
}

// WorkerConfig holds everything a worker is constructed with
type WorkerConfig struct {
	ID         int
	Shard      partition.Shard
	Labels     Labels
	TieBreaker TieBreaker
	Stability  StabilityCheck
	Barriers   Barriers
	Control    Control
	Logger     logging.Logger
}

// Worker owns one shard and advances it through the round state machine.
// Only this worker writes labels of nodes in its shard.
type Worker struct {
	id        int
	shard     partition.Shard
	labels    Labels
	voter     *Voter
	stability StabilityCheck
	barriers  Barriers
	control   Control
	logger    logging.Logger

	state   State
	round   int
	stable  bool
	changed int

	// indexed by position within the shard
	previous []int
	next     []int
}

// NewWorker creates a worker in StateWaitCompute. previous starts as the
// shard's current labels.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.Stability == "" {
		cfg.Stability = StabilityTwoRound
	}
	if cfg.TieBreaker == nil {
		cfg.TieBreaker = LowestLabelTieBreak{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	w := &Worker{
		id:        cfg.ID,
		shard:     cfg.Shard,
		labels:    cfg.Labels,
		voter:     NewVoter(cfg.TieBreaker),
		stability: cfg.Stability,
		barriers:  cfg.Barriers,
		control:   cfg.Control,
		logger:    cfg.Logger.With(logging.Component("worker"), logging.Worker(cfg.ID)),
		state:     StateWaitCompute,
		previous:  make([]int, cfg.Shard.Len()),
		next:      make([]int, cfg.Shard.Len()),
	}
	for i := range w.previous {
		w.previous[i] = w.labels.Label(w.shard.Start + i)
	}
	return w
}

// Step performs the action of the current state and moves to the next one.
// A barrier failure moves the worker to StateExit and is returned.
func (w *Worker) Step() error {
	switch w.state {
	case StateWaitCompute:
		if err := w.barriers.Compute.Wait(); err != nil {
			return w.abort("compute", err)
		}
		w.state = StateCompute

	case StateCompute:
		w.compute()
		w.state = StateWaitStore

	case StateWaitStore:
		if err := w.barriers.Store.Wait(); err != nil {
			return w.abort("store", err)
		}
		w.state = StateStore

	case StateStore:
		w.store()
		w.control.Report(w.id, w.stable, w.changed)
		w.state = StateWaitCheck

	case StateWaitCheck:
		if err := w.barriers.CheckCompletion.Wait(); err != nil {
			return w.abort("check-completion", err)
		}
		if err := w.barriers.CheckFinish.Wait(); err != nil {
			return w.abort("check-finish", err)
		}
		w.round++
		if w.control.Running() {
			w.state = StateWaitCompute
		} else {
			w.state = StateExit
		}

	case StateExit:
	}
	return nil
}

// Run steps until the coordinator halts the pool
func (w *Worker) Run() error {
	w.logger.Debug("worker started", logging.Int("shard_start", w.shard.Start), logging.Int("shard_len", w.shard.Len()))

	for w.state != StateExit {
		if err := w.Step(); err != nil {
			return err
		}
	}

	w.logger.Debug("worker finished", logging.Int("rounds", w.round))
	return nil
}

// compute fills next from the current labels. Reads may reach any shard;
// nobody writes during this phase.
func (w *Worker) compute() {
	w.stable = true
	for i := range w.next {
		id := w.shard.Start + i
		w.next[i] = w.voter.Vote(w.labels, id)

		var reference int
		if w.stability == StabilityOneRound {
			reference = w.labels.Label(id)
		} else {
			reference = w.previous[i]
		}
		if w.next[i] != reference {
			w.stable = false
		}
	}
}

// store commits next to the shard, keeping the overwritten labels in previous
func (w *Worker) store() {
	w.changed = 0
	for i, label := range w.next {
		id := w.shard.Start + i
		w.previous[i] = w.labels.Label(id)
		if label != w.previous[i] {
			w.changed++
		}
		w.labels.SetLabel(id, label)
	}
}

func (w *Worker) abort(barrier string, err error) error {
	w.state = StateExit
	return fmt.Errorf("worker %d round %d: %s barrier: %w", w.id, w.round+1, barrier, err)
}

// ID returns the worker index
func (w *Worker) ID() int { return w.id }

// Shard returns the owned node range
func (w *Worker) Shard() partition.Shard { return w.shard }

// State returns the current state
func (w *Worker) State() State { return w.state }

// Round returns the number of completed rounds
func (w *Worker) Round() int { return w.round }

// Stable returns the stability flag computed in the latest Compute
func (w *Worker) Stable() bool { return w.stable }

// Next returns a copy of the labels computed in the latest Compute
func (w *Worker) Next() []int { return append([]int(nil), w.next...) }
