package algorithms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-labelprop/pkg/graph"
)

func TestRunSequential_Path(t *testing.T) {
	res, err := RunSequential(mustPath(t, 6), nil, SequentialOptions{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Rounds)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, res.Labels)
}

func TestRunSequential_Complete(t *testing.T) {
	res, err := RunSequential(mustComplete(t, 5), nil, SequentialOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Rounds)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, res.Labels)
}

func TestRunSequential_OneRoundStopsAtMaxRounds(t *testing.T) {
	res, err := RunSequential(mustPath(t, 6), nil, SequentialOptions{
		Stability: StabilityOneRound,
		MaxRounds: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Rounds)
	assert.False(t, res.Converged)
}

func TestRunSequential_IsolatedNodes(t *testing.T) {
	g, err := graph.New(4)
	require.NoError(t, err)

	res, err := RunSequential(g, nil, SequentialOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rounds)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Labels)
}

func TestRunSequential_InitialLabelsUntouched(t *testing.T) {
	initial := []int{7, 7, 3}
	g := mustPath(t, 3)

	res, err := RunSequential(g, initial, SequentialOptions{})
	require.NoError(t, err)

	assert.Equal(t, []int{7, 7, 3}, initial)
	assert.Equal(t, []int{7, 3, 7}, res.Labels)
	assert.Equal(t, 3, res.Rounds)
	assert.Equal(t, []int{0, 1, 2}, g.Labels(), "the graph's own labels are never written")
}

func TestRunSequential_Errors(t *testing.T) {
	_, err := RunSequential(nil, nil, SequentialOptions{})
	assert.ErrorIs(t, err, ErrNilGraph)

	_, err = RunSequential(mustPath(t, 3), []int{0, 1}, SequentialOptions{})
	assert.Error(t, err)

	_, err = RunSequential(mustPath(t, 3), nil, SequentialOptions{Stability: "eventual"})
	assert.Error(t, err)
}

func TestRunSequential_AgreesWithParallelRun(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		g, err := graph.Build(40, 0.1, graph.BuildOptions{Seed: 23})
		require.NoError(t, err)

		want, err := RunSequential(g, nil, SequentialOptions{MaxRounds: 100})
		require.NoError(t, err)

		res, err := Run(context.Background(), g, Options{Workers: workers, TieBreak: TieBreakLowest, MaxRounds: 100})
		require.NoError(t, err)

		assert.Equal(t, want.Labels, res.Labels, "workers=%d", workers)
		assert.Equal(t, want.Rounds, res.Rounds, "workers=%d", workers)
		assert.Equal(t, want.Converged, res.Converged, "workers=%d", workers)
	}
}
