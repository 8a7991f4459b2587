package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository"
)

var (
	ErrSessionNotFound  = repository.ErrSessionNotFound
	ErrTeamNotFound     = repository.ErrTeamNotFound
	ErrSessionFinalized = domain.ErrSessionFinalized
	ErrTimerRunning     = domain.ErrTimerRunning
	ErrTimerNotRunning  = domain.ErrTimerNotRunning
	ErrInvalidStatus    = domain.ErrInvalidStatus
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.RaceSession) (domain.RaceSession, error)
	FindByID(ctx context.Context, id uint) (domain.RaceSession, error)
	FindAll(ctx context.Context) ([]domain.RaceSession, error)
	Update(ctx context.Context, session domain.RaceSession) (domain.RaceSession, error)
}

type SessionTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Team, error)
}

type SessionConfigRepository interface {
	Get(ctx context.Context) (domain.ScoringConfig, error)
}

// SessionService owns the run lifecycle. Every mutation goes through a
// per-session lock so the finalize-only-from-stopped invariant holds when two
// operators touch the same run.
type SessionService struct {
	repo    SessionRepository
	teams   SessionTeamRepository
	configs SessionConfigRepository
	events  EventPublisher

	now func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewSessionService(repo SessionRepository, teams SessionTeamRepository, configs SessionConfigRepository, events EventPublisher) *SessionService {
	return &SessionService{
		repo:    repo,
		teams:   teams,
		configs: configs,
		events:  events,
		now:     time.Now,
		locks:   make(map[uint]*sync.Mutex),
	}
}

// CreateSession opens a new run for a team. Unknown teams fail fast with
// ErrTeamNotFound instead of producing an orphaned session.
func (s *SessionService) CreateSession(ctx context.Context, teamID uint) (domain.RaceSession, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.RaceSession{TeamID: team.ID})
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.publish(EventSessionCreated, created)

	return created, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uint) (domain.RaceSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context) ([]domain.RaceSession, error) {
	sessions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sessions, nil
}

// PreviewScore recomputes the score of a session against the current
// configuration without mutating anything.
func (s *SessionService) PreviewScore(ctx context.Context, id uint) (int, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	config, err := s.configs.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.configs.Get -> %w", err)
	}

	return domain.ComputeScore(session, config), nil
}

func (s *SessionService) MarkObstacle(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.MarkObstacle(obstacleID, status)
	})
}

func (s *SessionService) AddPenalty(ctx context.Context, sessionID uint, penaltyTypeID string) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.AddPenalty(penaltyTypeID)
	})
}

func (s *SessionService) CallTimeout(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.CallTimeout()
	})
}

func (s *SessionService) UpdateNotes(ctx context.Context, sessionID uint, notes string) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.SetNotes(notes)
	})
}

func (s *SessionService) UpdatePhotos(ctx context.Context, sessionID uint, teamPhoto, robotPhoto *string) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.SetPhotos(teamPhoto, robotPhoto)
	})
}

func (s *SessionService) StartTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.StartTimer(s.now())
	})
}

func (s *SessionService) StopTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionUpdated, func(session *domain.RaceSession) error {
		return session.StopTimer(s.now())
	})
}

func (s *SessionService) Finalize(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return s.mutate(ctx, sessionID, EventSessionFinalized, func(session *domain.RaceSession) error {
		return session.Finalize(s.now())
	})
}

// mutate serializes load → transition → recompute → save for one session.
// A rejected transition returns before anything is written, so the stored
// session is untouched.
func (s *SessionService) mutate(ctx context.Context, sessionID uint, eventType string, apply func(*domain.RaceSession) error) (domain.RaceSession, error) {
	defer s.lockSession(sessionID).Unlock()

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	config, err := s.configs.Get(ctx)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.configs.Get -> %w", err)
	}

	if err = apply(&session); err != nil {
		return domain.RaceSession{}, err
	}

	session.FinalScore = domain.ComputeScore(session, config)

	updated, err := s.repo.Update(ctx, session)
	if err != nil {
		return domain.RaceSession{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.publish(eventType, updated)

	return updated, nil
}

func (s *SessionService) lockSession(id uint) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()

	return lock
}

func (s *SessionService) publish(eventType string, session domain.RaceSession) {
	if s.events == nil {
		return
	}

	s.events.Publish(Event{
		Type:        eventType,
		SessionID:   session.ID,
		TeamID:      session.TeamID,
		FinalScore:  session.FinalScore,
		Duration:    session.Duration,
		IsCompleted: session.IsCompleted,
	})
}
