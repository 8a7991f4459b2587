package service

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
)

type LeaderboardTeamRepository interface {
	FindAll(ctx context.Context) ([]domain.Team, error)
}

type LeaderboardSessionRepository interface {
	FindAll(ctx context.Context) ([]domain.RaceSession, error)
}

type LeaderboardService struct {
	teams    LeaderboardTeamRepository
	sessions LeaderboardSessionRepository
}

func NewLeaderboardService(teams LeaderboardTeamRepository, sessions LeaderboardSessionRepository) *LeaderboardService {
	return &LeaderboardService{
		teams:    teams,
		sessions: sessions,
	}
}

// GetLeaderboard reduces all completed sessions to a ranked best-run-per-team
// board. Ranking reads each session's cached final score; it never re-scores
// against the live configuration.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.teams.FindAll -> %w", err)
	}

	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindAll -> %w", err)
	}

	return domain.ComputeLeaderboard(teams, sessions), nil
}
