package repository

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.RaceSession) (dao.RaceSession, error)
	FindByID(ctx context.Context, id uint) (dao.RaceSession, error)
	FindAll(ctx context.Context) ([]dao.RaceSession, error)
	Update(ctx context.Context, session dao.RaceSession) (dao.RaceSession, error)
	DeleteAll(ctx context.Context) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.RaceSession) (domain.RaceSession, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(session))
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.RaceSession, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]domain.RaceSession, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sessions := make([]domain.RaceSession, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, r.daoToDomain(s))
	}

	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, session domain.RaceSession) (domain.RaceSession, error) {
	daoSession := r.domainToDAO(session)
	daoSession.CreatedAt = session.CreatedAt

	updated, err := r.dao.Update(ctx, daoSession)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if err := r.dao.DeleteAll(ctx); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}

func (r *SessionRepository) domainToDAO(s domain.RaceSession) dao.RaceSession {
	var obstacles map[string]string
	if len(s.Obstacles) > 0 {
		obstacles = make(map[string]string, len(s.Obstacles))
		for id, status := range s.Obstacles {
			obstacles[id] = string(status)
		}
	}

	return dao.RaceSession{
		ID:             s.ID,
		TeamID:         s.TeamID,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		TimerStartedAt: s.TimerStartedAt,
		Duration:       s.Duration,
		Timeouts:       s.Timeouts,
		Obstacles:      obstacles,
		Penalties:      s.Penalties,
		TeamPhoto:      s.TeamPhoto,
		RobotPhoto:     s.RobotPhoto,
		Notes:          s.Notes,
		IsCompleted:    s.IsCompleted,
		FinalScore:     s.FinalScore,
	}
}

func (r *SessionRepository) daoToDomain(s dao.RaceSession) domain.RaceSession {
	obstacles := make(map[string]domain.ObstacleStatus, len(s.Obstacles))
	for id, status := range s.Obstacles {
		obstacles[id] = domain.ObstacleStatus(status)
	}

	return domain.RaceSession{
		ID:             s.ID,
		TeamID:         s.TeamID,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		TimerStartedAt: s.TimerStartedAt,
		Duration:       s.Duration,
		Timeouts:       s.Timeouts,
		Obstacles:      obstacles,
		Penalties:      s.Penalties,
		TeamPhoto:      s.TeamPhoto,
		RobotPhoto:     s.RobotPhoto,
		Notes:          s.Notes,
		IsCompleted:    s.IsCompleted,
		FinalScore:     s.FinalScore,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
