package service

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository"
)

var (
	ErrTeamNumberExists = repository.ErrTeamNumberExists
	ErrTeamHasSessions  = repository.ErrTeamHasSessions
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindAll(ctx context.Context) ([]domain.Team, error)
	Update(ctx context.Context, team domain.Team) (domain.Team, error)
	Delete(ctx context.Context, id uint) error
}

type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{
		repo: repo,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	updated, err := s.repo.Update(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
