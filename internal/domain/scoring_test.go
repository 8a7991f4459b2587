package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore(t *testing.T) {
	cfg := DefaultScoringConfig()

	tests := []struct {
		name    string
		session RaceSession
		want    int
	}{
		{
			name:    "empty session scores base points",
			session: RaceSession{},
			want:    1000,
		},
		{
			name: "cleared and partial obstacles with penalty and timeout",
			session: RaceSession{
				Obstacles: map[string]ObstacleStatus{
					"obs2": ObstacleCleared, // Ramp Climb, 150
					"obs4": ObstaclePartial, // Heavy Lift, 200 -> 100
				},
				Penalties: []string{"p2"}, // Boundary Violation, 50
				Timeouts:  1,              // 50
			},
			want: 1150,
		},
		{
			name: "failed obstacles contribute nothing",
			session: RaceSession{
				Obstacles: map[string]ObstacleStatus{
					"obs1": ObstacleFailed,
					"obs5": ObstacleFailed,
				},
			},
			want: 1000,
		},
		{
			name: "partial credit rounds down",
			session: RaceSession{
				Obstacles: map[string]ObstacleStatus{
					"obs2": ObstaclePartial, // 150 -> 75
				},
			},
			want: 1075,
		},
		{
			name: "unknown penalty ids are ignored",
			session: RaceSession{
				Penalties: []string{"p-removed", "p1"},
			},
			want: 900,
		},
		{
			name: "repeated penalties each count",
			session: RaceSession{
				Penalties: []string{"p2", "p2", "p2"},
			},
			want: 850,
		},
		{
			name: "score clamps at zero",
			session: RaceSession{
				Timeouts:  100, // 5000 in deductions
				Penalties: []string{"p3", "p3", "p3"},
			},
			want: 0,
		},
		{
			name: "all obstacles cleared",
			session: RaceSession{
				Obstacles: map[string]ObstacleStatus{
					"obs1": ObstacleCleared,
					"obs2": ObstacleCleared,
					"obs3": ObstacleCleared,
					"obs4": ObstacleCleared,
					"obs5": ObstacleCleared,
				},
			},
			want: 1850,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.session, cfg))
		})
	}
}

func TestComputeScoreIsPure(t *testing.T) {
	cfg := DefaultScoringConfig()
	session := RaceSession{
		Obstacles: map[string]ObstacleStatus{"obs1": ObstacleCleared},
		Penalties: []string{"p1"},
		Timeouts:  2,
	}

	first := ComputeScore(session, cfg)
	second := ComputeScore(session, cfg)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]ObstacleStatus{"obs1": ObstacleCleared}, session.Obstacles)
	assert.Equal(t, []string{"p1"}, session.Penalties)
	assert.Equal(t, 2, session.Timeouts)
}

func TestComputeScoreNeverNegative(t *testing.T) {
	cfg := DefaultScoringConfig()

	for timeouts := 0; timeouts < 200; timeouts += 13 {
		s := RaceSession{Timeouts: timeouts}
		assert.GreaterOrEqual(t, ComputeScore(s, cfg), 0)
	}
}

func TestScoringConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultScoringConfig().Validate())
	})

	t.Run("duplicate obstacle ids", func(t *testing.T) {
		cfg := DefaultScoringConfig()
		cfg.Obstacles = append(cfg.Obstacles, Obstacle{ID: "obs1", Name: "Copy", MaxPoints: 10})

		assert.ErrorIs(t, cfg.Validate(), ErrDuplicateObstacleID)
	})

	t.Run("duplicate penalty ids", func(t *testing.T) {
		cfg := DefaultScoringConfig()
		cfg.Penalties = append(cfg.Penalties, PenaltyType{ID: "p1", Name: "Copy", Points: 10})

		assert.ErrorIs(t, cfg.Validate(), ErrDuplicatePenaltyID)
	})

	t.Run("negative points", func(t *testing.T) {
		cfg := DefaultScoringConfig()
		cfg.Obstacles[0].MaxPoints = -5

		assert.ErrorIs(t, cfg.Validate(), ErrNegativePoints)
	})

	t.Run("negative timeout deduction", func(t *testing.T) {
		cfg := DefaultScoringConfig()
		cfg.TimeoutDeduction = -1

		assert.ErrorIs(t, cfg.Validate(), ErrNegativePoints)
	})
}
