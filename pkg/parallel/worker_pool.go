// Package parallel provides the synchronization primitives used by the
// propagation engine: a reusable phased barrier and a fixed-size pool of
// long-lived goroutines.
package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")
	// ErrPoolFull is returned when more members are started than the pool was sized for
	ErrPoolFull = errors.New("pool is full")
	// ErrMemberPanic wraps a panic recovered from a pool member
	ErrMemberPanic = errors.New("pool member panicked")
)

// MaxWorkers is the maximum number of members allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// WorkerPool runs a fixed set of long-lived members, each on its own
// goroutine. Members are started once and never replaced; the pool does not
// queue work. The first member failure triggers the failure hook exactly once,
// which callers use to release the remaining members.
type WorkerPool struct {
	size      int
	group     errgroup.Group
	mu        sync.Mutex
	started   int
	failOnce  sync.Once
	cause     error
	onFailure func(error)
}

// NewWorkerPool creates a pool for exactly size members
func NewWorkerPool(size int, onFailure func(error)) (*WorkerPool, error) {
	if size < 1 {
		return nil, fmt.Errorf("worker count %d: must be at least 1", size)
	}
	if size > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, size, MaxWorkers)
	}

	return &WorkerPool{size: size, onFailure: onFailure}, nil
}

// Go starts a member. A panic inside fn is recovered and reported as an
// error wrapping ErrMemberPanic.
func (wp *WorkerPool) Go(name string, fn func() error) error {
	wp.mu.Lock()
	if wp.started == wp.size {
		wp.mu.Unlock()
		return fmt.Errorf("%w: %d members", ErrPoolFull, wp.size)
	}
	wp.started++
	wp.mu.Unlock()

	wp.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: %w: %v", name, ErrMemberPanic, r)
			}
			if err != nil {
				wp.fail(err)
			}
		}()
		return fn()
	})
	return nil
}

func (wp *WorkerPool) fail(err error) {
	wp.failOnce.Do(func() {
		wp.cause = err
		if wp.onFailure != nil {
			wp.onFailure(err)
		}
	})
}

// Wait blocks until every started member has returned and reports the
// error that triggered the failure hook, if any
func (wp *WorkerPool) Wait() error {
	if err := wp.group.Wait(); err != nil {
		if wp.cause != nil {
			return wp.cause
		}
		return err
	}
	return nil
}

// Size returns the number of members the pool was created for
func (wp *WorkerPool) Size() int {
	return wp.size
}
