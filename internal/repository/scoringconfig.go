package repository

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository/dao"
)

var ErrConfigNotFound = dao.ErrConfigNotFound

type ScoringConfigDAO interface {
	Get(ctx context.Context) (dao.ScoringConfig, error)
	Save(ctx context.Context, config dao.ScoringConfig) (dao.ScoringConfig, error)
}

type ScoringConfigRepository struct {
	dao ScoringConfigDAO
}

func NewScoringConfigRepository(dao ScoringConfigDAO) *ScoringConfigRepository {
	return &ScoringConfigRepository{
		dao: dao,
	}
}

func (r *ScoringConfigRepository) Get(ctx context.Context) (domain.ScoringConfig, error) {
	found, err := r.dao.Get(ctx)
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ScoringConfigRepository) Save(ctx context.Context, config domain.ScoringConfig) (domain.ScoringConfig, error) {
	obstacles := make([]dao.ObstacleItem, 0, len(config.Obstacles))
	for _, o := range config.Obstacles {
		obstacles = append(obstacles, dao.ObstacleItem{
			ID:        o.ID,
			Name:      o.Name,
			MaxPoints: o.MaxPoints,
		})
	}

	penalties := make([]dao.PenaltyItem, 0, len(config.Penalties))
	for _, p := range config.Penalties {
		penalties = append(penalties, dao.PenaltyItem{
			ID:     p.ID,
			Name:   p.Name,
			Points: p.Points,
		})
	}

	saved, err := r.dao.Save(ctx, dao.ScoringConfig{
		BasePoints:       config.BasePoints,
		TimeoutDeduction: config.TimeoutDeduction,
		Obstacles:        obstacles,
		Penalties:        penalties,
	})
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("r.dao.Save -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *ScoringConfigRepository) daoToDomain(c dao.ScoringConfig) domain.ScoringConfig {
	obstacles := make([]domain.Obstacle, 0, len(c.Obstacles))
	for _, o := range c.Obstacles {
		obstacles = append(obstacles, domain.Obstacle{
			ID:        o.ID,
			Name:      o.Name,
			MaxPoints: o.MaxPoints,
		})
	}

	penalties := make([]domain.PenaltyType, 0, len(c.Penalties))
	for _, p := range c.Penalties {
		penalties = append(penalties, domain.PenaltyType{
			ID:     p.ID,
			Name:   p.Name,
			Points: p.Points,
		})
	}

	return domain.ScoringConfig{
		BasePoints:       c.BasePoints,
		TimeoutDeduction: c.TimeoutDeduction,
		Obstacles:        obstacles,
		Penalties:        penalties,
		UpdatedAt:        c.UpdatedAt,
	}
}
