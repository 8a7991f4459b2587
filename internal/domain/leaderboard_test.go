package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSession(id, teamID uint, score int, duration int64) RaceSession {
	return RaceSession{
		ID:          id,
		TeamID:      teamID,
		Duration:    duration,
		IsCompleted: true,
		FinalScore:  score,
	}
}

func TestComputeLeaderboard(t *testing.T) {
	teams := []Team{
		{ID: 1, Number: "101", Name: "CyberKnights"},
		{ID: 2, Number: "202", Name: "RoboRaptors"},
		{ID: 3, Number: "303", Name: "GearGrinders"},
	}

	t.Run("uses best completed run per team", func(t *testing.T) {
		sessions := []RaceSession{
			completedSession(1, 1, 1100, 60_000),
			completedSession(2, 1, 1300, 80_000),
			completedSession(3, 2, 1200, 45_000),
			{ID: 4, TeamID: 2, FinalScore: 9999}, // open, ignored
		}

		entries := ComputeLeaderboard(teams, sessions)
		require.Len(t, entries, 3)

		assert.EqualValues(t, 1, entries[0].Rank)
		assert.EqualValues(t, 1, entries[0].Team.ID)
		assert.Equal(t, 1300, entries[0].BestScore)
		assert.EqualValues(t, 80_000, entries[0].BestTime)
		assert.Equal(t, 2, entries[0].TotalRuns)

		assert.EqualValues(t, 2, entries[1].Team.ID)
		assert.Equal(t, 1, entries[1].TotalRuns)
	})

	t.Run("score ties break on faster duration", func(t *testing.T) {
		sessions := []RaceSession{
			completedSession(1, 1, 1200, 90_000),
			completedSession(2, 2, 1200, 60_000),
		}

		entries := ComputeLeaderboard(teams, sessions)

		assert.EqualValues(t, 2, entries[0].Team.ID)
		assert.EqualValues(t, 1, entries[1].Team.ID)
	})

	t.Run("same team ties prefer the faster run", func(t *testing.T) {
		sessions := []RaceSession{
			completedSession(1, 1, 1200, 90_000),
			completedSession(2, 1, 1200, 60_000),
		}

		entries := ComputeLeaderboard(teams, sessions)

		assert.EqualValues(t, 2, entries[0].SessionID)
		assert.EqualValues(t, 60_000, entries[0].BestTime)
	})

	t.Run("teams without completed runs rank last in id order", func(t *testing.T) {
		sessions := []RaceSession{
			completedSession(1, 2, 1000, 30_000),
		}

		entries := ComputeLeaderboard(teams, sessions)
		require.Len(t, entries, 3)

		assert.EqualValues(t, 2, entries[0].Team.ID)

		// Zero-run teams are deterministic: ordered by team id.
		assert.EqualValues(t, 1, entries[1].Team.ID)
		assert.Equal(t, 0, entries[1].BestScore)
		assert.Equal(t, 0, entries[1].TotalRuns)
		assert.EqualValues(t, 3, entries[2].Team.ID)
	})

	t.Run("empty inputs produce empty board", func(t *testing.T) {
		assert.Empty(t, ComputeLeaderboard(nil, nil))
	})
}
