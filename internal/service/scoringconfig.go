package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository"
)

var (
	ErrConfigNotFound = repository.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid scoring config")
)

type ScoringConfigRepository interface {
	Get(ctx context.Context) (domain.ScoringConfig, error)
	Save(ctx context.Context, config domain.ScoringConfig) (domain.ScoringConfig, error)
}

type ScoringConfigService struct {
	repo ScoringConfigRepository
}

func NewScoringConfigService(repo ScoringConfigRepository) *ScoringConfigService {
	return &ScoringConfigService{
		repo: repo,
	}
}

func (s *ScoringConfigService) GetConfig(ctx context.Context) (domain.ScoringConfig, error) {
	config, err := s.repo.Get(ctx)
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return config, nil
}

// UpdateConfig replaces the scoring configuration. Already-scored sessions
// keep their snapshotted final scores; only future evaluations see the new
// values.
func (s *ScoringConfigService) UpdateConfig(ctx context.Context, config domain.ScoringConfig) (domain.ScoringConfig, error) {
	if err := config.Validate(); err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	saved, err := s.repo.Save(ctx, config)
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("s.repo.Save -> %w", err)
	}

	return saved, nil
}
