package parallel

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolOverflow(t *testing.T) {
	_, err := NewWorkerPool(math.MaxInt, nil)
	if !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("NewWorkerPool(MaxInt) error = %v, want ErrTooManyWorkers", err)
	}
}

func TestWorkerPoolInvalidSize(t *testing.T) {
	for _, n := range []int{0, -5} {
		if _, err := NewWorkerPool(n, nil); err == nil {
			t.Errorf("NewWorkerPool(%d) should fail", n)
		}
	}
}

func TestWorkerPoolRunsAllMembers(t *testing.T) {
	pool, err := NewWorkerPool(4, nil)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	var counter atomic.Int64
	for i := 0; i < 4; i++ {
		if err := pool.Go("member", func() error {
			counter.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("Go() = %v", err)
		}
	}

	if err := pool.Wait(); err != nil {
		t.Errorf("Wait() = %v", err)
	}
	if counter.Load() != 4 {
		t.Errorf("counter = %d, want 4", counter.Load())
	}
}

// Members must run concurrently: all of them meet at one barrier
func TestWorkerPoolMembersAreConcurrent(t *testing.T) {
	const size = 6
	pool, _ := NewWorkerPool(size, nil)
	b, _ := NewBarrier(size)

	for i := 0; i < size; i++ {
		pool.Go("member", b.Wait)
	}

	done := make(chan error, 1)
	go func() { done <- pool.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("members did not run concurrently")
	}
}

func TestWorkerPoolFull(t *testing.T) {
	pool, _ := NewWorkerPool(1, nil)
	pool.Go("first", func() error { return nil })

	if err := pool.Go("second", func() error { return nil }); !errors.Is(err, ErrPoolFull) {
		t.Errorf("Go() = %v, want ErrPoolFull", err)
	}
	pool.Wait()
}

func TestWorkerPoolPanicBecomesError(t *testing.T) {
	var failures atomic.Int32
	b, _ := NewBarrier(3)
	pool, _ := NewWorkerPool(3, func(error) {
		failures.Add(1)
		b.Break()
	})

	pool.Go("waiter-a", b.Wait)
	pool.Go("waiter-b", b.Wait)
	pool.Go("crasher", func() error {
		panic("boom")
	})

	err := pool.Wait()
	if !errors.Is(err, ErrMemberPanic) {
		t.Errorf("Wait() = %v, want ErrMemberPanic", err)
	}
	if failures.Load() != 1 {
		t.Errorf("failure hook ran %d times, want 1", failures.Load())
	}
}

func TestWorkerPoolSize(t *testing.T) {
	pool, _ := NewWorkerPool(3, nil)
	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
}
