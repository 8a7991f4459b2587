package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trackside/scorekeeper-api/internal/domain"
)

type ResetSessionRepository interface {
	DeleteAll(ctx context.Context) error
}

type ResetTeamRepository interface {
	ReplaceAll(ctx context.Context, teams []domain.Team) ([]domain.Team, error)
}

type ResetConfigRepository interface {
	Save(ctx context.Context, config domain.ScoringConfig) (domain.ScoringConfig, error)
}

// ResetService wipes all sessions and restores the seed registry and default
// scoring configuration. Destructive; the handler gates it behind the admin
// role.
type ResetService struct {
	sessions ResetSessionRepository
	teams    ResetTeamRepository
	configs  ResetConfigRepository
	events   EventPublisher
}

func NewResetService(sessions ResetSessionRepository, teams ResetTeamRepository, configs ResetConfigRepository, events EventPublisher) *ResetService {
	return &ResetService{
		sessions: sessions,
		teams:    teams,
		configs:  configs,
		events:   events,
	}
}

func (s *ResetService) ResetAll(ctx context.Context) error {
	if err := s.sessions.DeleteAll(ctx); err != nil {
		return fmt.Errorf("s.sessions.DeleteAll -> %w", err)
	}

	if _, err := s.teams.ReplaceAll(ctx, domain.SeedTeams()); err != nil {
		return fmt.Errorf("s.teams.ReplaceAll -> %w", err)
	}

	if _, err := s.configs.Save(ctx, domain.DefaultScoringConfig()); err != nil {
		return fmt.Errorf("s.configs.Save -> %w", err)
	}

	zap.L().Warn("all sessions cleared, seed teams and default config restored")

	if s.events != nil {
		s.events.Publish(Event{Type: EventReset})
	}

	return nil
}
