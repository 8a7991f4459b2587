package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.January, 28, 15, 0, 0, 0, time.UTC)

func TestMarkObstacle(t *testing.T) {
	t.Run("stores and replaces marks", func(t *testing.T) {
		var s RaceSession

		require.NoError(t, s.MarkObstacle("obs1", ObstaclePartial))
		require.NoError(t, s.MarkObstacle("obs1", ObstacleCleared))

		assert.Equal(t, map[string]ObstacleStatus{"obs1": ObstacleCleared}, s.Obstacles)
	})

	t.Run("marking is idempotent", func(t *testing.T) {
		cfg := DefaultScoringConfig()
		var s RaceSession

		require.NoError(t, s.MarkObstacle("obs2", ObstacleCleared))
		once := ComputeScore(s, cfg)
		require.NoError(t, s.MarkObstacle("obs2", ObstacleCleared))

		assert.Equal(t, once, ComputeScore(s, cfg))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		var s RaceSession

		assert.ErrorIs(t, s.MarkObstacle("obs1", "NOT_STARTED"), ErrInvalidStatus)
		assert.Empty(t, s.Obstacles)
	})
}

func TestTimerAccumulatesAcrossPauses(t *testing.T) {
	var s RaceSession

	require.NoError(t, s.StartTimer(t0))
	require.NoError(t, s.StopTimer(t0.Add(10*time.Second)))
	assert.EqualValues(t, 10_000, s.Duration)

	// Resuming continues from the accumulated value.
	require.NoError(t, s.StartTimer(t0.Add(time.Minute)))
	assert.EqualValues(t, 10_000+5_000, s.Elapsed(t0.Add(time.Minute+5*time.Second)))
	require.NoError(t, s.StopTimer(t0.Add(time.Minute+5*time.Second)))
	assert.EqualValues(t, 15_000, s.Duration)

	assert.NotNil(t, s.StartTime)
	assert.Equal(t, t0, *s.StartTime)
}

func TestTimerTransitionGuards(t *testing.T) {
	var s RaceSession

	assert.ErrorIs(t, s.StopTimer(t0), ErrTimerNotRunning)

	require.NoError(t, s.StartTimer(t0))
	assert.ErrorIs(t, s.StartTimer(t0.Add(time.Second)), ErrTimerRunning)
}

func TestFinalize(t *testing.T) {
	t.Run("blocked while timer is running", func(t *testing.T) {
		var s RaceSession
		require.NoError(t, s.StartTimer(t0))

		assert.ErrorIs(t, s.Finalize(t0.Add(time.Minute)), ErrTimerRunning)
		assert.False(t, s.IsCompleted)
		assert.Nil(t, s.EndTime)
	})

	t.Run("captures end time and completes", func(t *testing.T) {
		var s RaceSession
		require.NoError(t, s.StartTimer(t0))
		require.NoError(t, s.StopTimer(t0.Add(90*time.Second)))

		require.NoError(t, s.Finalize(t0.Add(2*time.Minute)))

		assert.True(t, s.IsCompleted)
		assert.EqualValues(t, 90_000, s.Duration)
		require.NotNil(t, s.EndTime)
		assert.Equal(t, t0.Add(2*time.Minute), *s.EndTime)
	})

	t.Run("is terminal", func(t *testing.T) {
		var s RaceSession
		require.NoError(t, s.Finalize(t0))

		assert.ErrorIs(t, s.Finalize(t0), ErrSessionFinalized)
	})
}

func TestFinalizedSessionIsImmutable(t *testing.T) {
	s := RaceSession{
		Obstacles:  map[string]ObstacleStatus{"obs1": ObstacleCleared},
		Penalties:  []string{"p1"},
		Timeouts:   1,
		Notes:      "solid run",
		FinalScore: 950,
	}
	require.NoError(t, s.Finalize(t0))
	frozen := s

	assert.ErrorIs(t, s.MarkObstacle("obs2", ObstacleCleared), ErrSessionFinalized)
	assert.ErrorIs(t, s.AddPenalty("p2"), ErrSessionFinalized)
	assert.ErrorIs(t, s.CallTimeout(), ErrSessionFinalized)
	assert.ErrorIs(t, s.SetNotes("edited"), ErrSessionFinalized)
	assert.ErrorIs(t, s.StartTimer(t0), ErrSessionFinalized)
	assert.ErrorIs(t, s.StopTimer(t0), ErrSessionFinalized)

	// Rejected transitions leave every field untouched.
	assert.Equal(t, frozen, s)
}

func TestFinalScoreCacheConsistency(t *testing.T) {
	cfg := DefaultScoringConfig()
	var s RaceSession

	require.NoError(t, s.MarkObstacle("obs2", ObstacleCleared))
	require.NoError(t, s.MarkObstacle("obs4", ObstaclePartial))
	require.NoError(t, s.AddPenalty("p2"))
	require.NoError(t, s.CallTimeout())
	s.FinalScore = ComputeScore(s, cfg)

	require.NoError(t, s.Finalize(t0))

	assert.Equal(t, 1150, s.FinalScore)
	assert.Equal(t, s.FinalScore, ComputeScore(s, cfg))
}
