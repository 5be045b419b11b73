package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewBarrier_InvalidParties(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewBarrier(n); err == nil {
			t.Errorf("NewBarrier(%d) should fail", n)
		}
	}
}

func TestBarrier_SingleParty(t *testing.T) {
	b, _ := NewBarrier(1)
	for i := 0; i < 3; i++ {
		if err := b.Wait(); err != nil {
			t.Fatalf("Wait() = %v", err)
		}
	}
	if b.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", b.Generation())
	}
}

// TestBarrier_NoPartyPassesEarly checks that no party leaves a phase before
// all parties have entered it, across many reuses
func TestBarrier_NoPartyPassesEarly(t *testing.T) {
	const parties = 8
	const phases = 200

	b, _ := NewBarrier(parties)
	var arrived [phases]atomic.Int32
	var violations atomic.Int32

	var wg sync.WaitGroup
	for p := 0; p < parties; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for phase := 0; phase < phases; phase++ {
				arrived[phase].Add(1)
				if err := b.Wait(); err != nil {
					t.Errorf("Wait() = %v", err)
					return
				}
				if arrived[phase].Load() != parties {
					violations.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if v := violations.Load(); v != 0 {
		t.Errorf("%d parties left a phase early", v)
	}
	if b.Generation() != phases {
		t.Errorf("Generation() = %d, want %d", b.Generation(), phases)
	}
}

func TestBarrier_ActionRunsOncePerGeneration(t *testing.T) {
	var actions int
	var inAction atomic.Bool
	b, _ := NewBarrier(4, WithAction(func() {
		actions++
		inAction.Store(true)
		time.Sleep(time.Millisecond)
		inAction.Store(false)
	}))

	var released atomic.Int32
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				b.Wait()
				if inAction.Load() {
					t.Error("party released while action was running")
				}
				released.Add(1)
			}
		}()
	}
	wg.Wait()

	if actions != 10 {
		t.Errorf("action ran %d times, want 10", actions)
	}
	if released.Load() != 40 {
		t.Errorf("released %d times, want 40", released.Load())
	}
}

func TestBarrier_Break(t *testing.T) {
	b, _ := NewBarrier(3)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { errs <- b.Wait() }()
	}

	time.Sleep(10 * time.Millisecond)
	b.Break()

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrBarrierBroken) {
				t.Errorf("Wait() = %v, want ErrBarrierBroken", err)
			}
		case <-time.After(time.Second):
			t.Fatal("waiter not released by Break")
		}
	}

	if err := b.Wait(); !errors.Is(err, ErrBarrierBroken) {
		t.Errorf("Wait() after Break = %v, want ErrBarrierBroken", err)
	}
}

func TestBarrier_Parties(t *testing.T) {
	b, _ := NewBarrier(5)
	if b.Parties() != 5 {
		t.Errorf("Parties() = %d, want 5", b.Parties())
	}
}
