package parallel

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBarrierBroken is returned by Wait once the barrier has been broken
var ErrBarrierBroken = errors.New("barrier broken")

// Waiter is a rendezvous point. Wait blocks until every participant of the
// current phase has arrived.
type Waiter interface {
	Wait() error
}

// Barrier is a reusable rendezvous for a fixed number of parties. Each call
// to Wait belongs to the current generation; when the last party arrives the
// optional action runs (still holding the barrier, before anyone is released),
// the generation advances and all parties return.
//
// Everything a party wrote before Wait is visible to every party after Wait
// returns.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation uint64
	broken     bool
	action     func()
}

// BarrierOption configures a Barrier
type BarrierOption func(*Barrier)

// WithAction runs fn once per generation, by the last arriving party
func WithAction(fn func()) BarrierOption {
	return func(b *Barrier) {
		b.action = fn
	}
}

// NewBarrier creates a barrier for the given number of parties
func NewBarrier(parties int, opts ...BarrierOption) (*Barrier, error) {
	if parties < 1 {
		return nil, fmt.Errorf("barrier parties %d: must be at least 1", parties)
	}

	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Wait blocks until all parties have called Wait for this generation
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return ErrBarrierBroken
	}

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		if b.action != nil {
			b.action()
		}
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return nil
	}

	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	if gen == b.generation {
		return ErrBarrierBroken
	}
	return nil
}

// Break releases every current and future waiter with ErrBarrierBroken.
// Used to unwind the other parties when one of them fails.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broken = true
	b.cond.Broadcast()
}

// Parties returns the number of participants per generation
func (b *Barrier) Parties() int {
	return b.parties
}

// Generation returns how many times the barrier has released its parties
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}
