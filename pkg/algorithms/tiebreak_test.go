package algorithms

import (
	"testing"
)

func TestNewTieBreaker(t *testing.T) {
	tests := []struct {
		policy  TieBreakPolicy
		wantErr bool
	}{
		{TieBreakRandom, false},
		{TieBreakLowest, false},
		{"", false},
		{"first", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			tb, err := NewTieBreaker(tt.policy, 1, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTieBreaker(%q) error = %v, wantErr %v", tt.policy, err, tt.wantErr)
			}
			if !tt.wantErr && tb == nil {
				t.Error("NewTieBreaker returned nil")
			}
		})
	}
}

func TestRandomTieBreak_SeededIsReproducible(t *testing.T) {
	candidates := []int{2, 5, 9, 11}
	a := NewRandomTieBreak(77)
	b := NewRandomTieBreak(77)

	for i := 0; i < 100; i++ {
		if a.Pick(candidates) != b.Pick(candidates) {
			t.Fatal("same seed produced different picks")
		}
	}
}

func TestRandomTieBreak_CoversAllCandidates(t *testing.T) {
	tb := NewRandomTieBreak(3)
	candidates := []int{10, 20, 30}
	seen := map[int]bool{}

	for i := 0; i < 300; i++ {
		seen[tb.Pick(candidates)] = true
	}
	if len(seen) != 3 {
		t.Errorf("picked %v, want all three candidates", seen)
	}
}

func TestRandomTieBreak_PerWorkerStreamsDiffer(t *testing.T) {
	candidates := make([]int, 50)
	for i := range candidates {
		candidates[i] = i
	}
	a, _ := NewTieBreaker(TieBreakRandom, 5, 0)
	b, _ := NewTieBreaker(TieBreakRandom, 5, 1)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Pick(candidates) == b.Pick(candidates) {
			same++
		}
	}
	if same == 100 {
		t.Error("workers share one random stream")
	}
}

func TestLowestLabelTieBreak(t *testing.T) {
	if got := (LowestLabelTieBreak{}).Pick([]int{8, 3, 5}); got != 3 {
		t.Errorf("Pick = %d, want 3", got)
	}
}
