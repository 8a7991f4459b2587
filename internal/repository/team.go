package repository

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository/dao"
)

var (
	ErrTeamNumberExists = dao.ErrTeamNumberExists
	ErrTeamNotFound     = dao.ErrTeamNotFound
	ErrTeamHasSessions  = dao.ErrTeamHasSessions
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindAll(ctx context.Context) ([]dao.Team, error)
	Update(ctx context.Context, team dao.Team) (dao.Team, error)
	Delete(ctx context.Context, id uint) error
	ReplaceAll(ctx context.Context, teams []dao.Team) ([]dao.Team, error)
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{
		Number: team.Number,
		Name:   team.Name,
		School: team.School,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]domain.Team, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	teams := make([]domain.Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, r.daoToDomain(t))
	}

	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	existing, err := r.dao.FindByID(ctx, team.ID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.Number = team.Number
	existing.Name = team.Name
	existing.School = team.School

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TeamRepository) ReplaceAll(ctx context.Context, teams []domain.Team) ([]domain.Team, error) {
	daoTeams := make([]dao.Team, 0, len(teams))
	for _, t := range teams {
		daoTeams = append(daoTeams, dao.Team{
			Number: t.Number,
			Name:   t.Name,
			School: t.School,
		})
	}

	replaced, err := r.dao.ReplaceAll(ctx, daoTeams)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ReplaceAll -> %w", err)
	}

	result := make([]domain.Team, 0, len(replaced))
	for _, t := range replaced {
		result = append(result, r.daoToDomain(t))
	}

	return result, nil
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:        t.ID,
		Number:    t.Number,
		Name:      t.Name,
		School:    t.School,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
