package domain

import "sort"

// LeaderboardEntry summarizes a team's best completed run. Teams without a
// completed run carry zero values and sort to the bottom.
type LeaderboardEntry struct {
	Rank      uint   `json:"rank"`
	Team      Team   `json:"team"`
	BestScore int    `json:"best_score"`
	BestTime  int64  `json:"best_time"` // milliseconds
	TotalRuns int    `json:"total_runs"`
	SessionID uint   `json:"session_id,omitempty"` // best completed session, 0 when none
}

// ComputeLeaderboard reduces completed sessions to one best run per team and
// orders the field by score (desc), then duration (asc), then team id so the
// result is deterministic for equal runs.
func ComputeLeaderboard(teams []Team, sessions []RaceSession) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(teams))

	for _, team := range teams {
		entry := LeaderboardEntry{Team: team}
		for i := range sessions {
			s := &sessions[i]
			if s.TeamID != team.ID || !s.IsCompleted {
				continue
			}

			entry.TotalRuns++
			if entry.SessionID == 0 || betterRun(s.FinalScore, s.Duration, entry.BestScore, entry.BestTime) {
				entry.BestScore = s.FinalScore
				entry.BestTime = s.Duration
				entry.SessionID = s.ID
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		if a.BestTime != b.BestTime {
			return a.BestTime < b.BestTime
		}
		return a.Team.ID < b.Team.ID
	})

	for i := range entries {
		entries[i].Rank = uint(i + 1)
	}

	return entries
}

func betterRun(score int, duration int64, bestScore int, bestTime int64) bool {
	if score != bestScore {
		return score > bestScore
	}
	return duration < bestTime
}
