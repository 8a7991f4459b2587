package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside/scorekeeper-api/internal/domain"
)

type fakeScoringConfigRepo struct {
	config domain.ScoringConfig
	saves  int
}

func (f *fakeScoringConfigRepo) Get(_ context.Context) (domain.ScoringConfig, error) {
	return f.config, nil
}

func (f *fakeScoringConfigRepo) Save(_ context.Context, config domain.ScoringConfig) (domain.ScoringConfig, error) {
	f.saves++
	f.config = config
	return config, nil
}

func TestUpdateConfig(t *testing.T) {
	t.Run("persists a valid config", func(t *testing.T) {
		repo := &fakeScoringConfigRepo{config: domain.DefaultScoringConfig()}
		svc := NewScoringConfigService(repo)

		next := domain.DefaultScoringConfig()
		next.BasePoints = 500

		saved, err := svc.UpdateConfig(context.Background(), next)
		require.NoError(t, err)

		assert.Equal(t, 500, saved.BasePoints)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("rejects duplicate ids without saving", func(t *testing.T) {
		repo := &fakeScoringConfigRepo{config: domain.DefaultScoringConfig()}
		svc := NewScoringConfigService(repo)

		bad := domain.DefaultScoringConfig()
		bad.Obstacles = append(bad.Obstacles, domain.Obstacle{ID: "obs1", Name: "Copy"})

		_, err := svc.UpdateConfig(context.Background(), bad)

		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Equal(t, 0, repo.saves)
	})

	t.Run("rejects negative point values", func(t *testing.T) {
		repo := &fakeScoringConfigRepo{config: domain.DefaultScoringConfig()}
		svc := NewScoringConfigService(repo)

		bad := domain.DefaultScoringConfig()
		bad.Penalties[0].Points = -10

		_, err := svc.UpdateConfig(context.Background(), bad)

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
