package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository"
)

type fakeSessionRepo struct {
	sessions map[uint]domain.RaceSession
	nextID   uint
	updates  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]domain.RaceSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session domain.RaceSession) (domain.RaceSession, error) {
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now()
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.RaceSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return domain.RaceSession{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) FindAll(_ context.Context) ([]domain.RaceSession, error) {
	all := make([]domain.RaceSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		all = append(all, s)
	}
	return all, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session domain.RaceSession) (domain.RaceSession, error) {
	if _, ok := f.sessions[session.ID]; !ok {
		return domain.RaceSession{}, repository.ErrSessionNotFound
	}
	f.updates++
	f.sessions[session.ID] = session
	return session, nil
}

type fakeTeamRepo struct {
	teams map[uint]domain.Team
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id uint) (domain.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return team, nil
}

type fakeConfigRepo struct {
	config domain.ScoringConfig
}

func (f *fakeConfigRepo) Get(_ context.Context) (domain.ScoringConfig, error) {
	return f.config, nil
}

type fakePublisher struct {
	events []Event
}

func (f *fakePublisher) Publish(event Event) {
	f.events = append(f.events, event)
}

func newTestSessionService() (*SessionService, *fakeSessionRepo, *fakePublisher) {
	repo := newFakeSessionRepo()
	teams := &fakeTeamRepo{teams: map[uint]domain.Team{
		1: {ID: 1, Number: "101", Name: "CyberKnights"},
	}}
	configs := &fakeConfigRepo{config: domain.DefaultScoringConfig()}
	events := &fakePublisher{}

	return NewSessionService(repo, teams, configs, events), repo, events
}

func TestCreateSession(t *testing.T) {
	t.Run("opens a zero-score session for a known team", func(t *testing.T) {
		svc, _, events := newTestSessionService()

		created, err := svc.CreateSession(context.Background(), 1)
		require.NoError(t, err)

		assert.EqualValues(t, 1, created.TeamID)
		assert.False(t, created.IsCompleted)
		assert.Equal(t, 0, created.FinalScore)
		assert.Zero(t, created.Timeouts)
		assert.Empty(t, created.Obstacles)
		assert.Empty(t, created.Penalties)

		require.Len(t, events.events, 1)
		assert.Equal(t, EventSessionCreated, events.events[0].Type)
	})

	t.Run("fails fast on unknown team", func(t *testing.T) {
		svc, repo, _ := newTestSessionService()

		_, err := svc.CreateSession(context.Background(), 42)

		assert.ErrorIs(t, err, ErrTeamNotFound)
		assert.Empty(t, repo.sessions)
	})
}

func TestSessionMutationsRecomputeScore(t *testing.T) {
	svc, _, _ := newTestSessionService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, 1)
	require.NoError(t, err)

	// Ramp Climb cleared: 1000 + 150.
	updated, err := svc.MarkObstacle(ctx, created.ID, "obs2", domain.ObstacleCleared)
	require.NoError(t, err)
	assert.Equal(t, 1150, updated.FinalScore)

	// Heavy Lift partial: +100.
	updated, err = svc.MarkObstacle(ctx, created.ID, "obs4", domain.ObstaclePartial)
	require.NoError(t, err)
	assert.Equal(t, 1250, updated.FinalScore)

	// Boundary Violation: -50.
	updated, err = svc.AddPenalty(ctx, created.ID, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1200, updated.FinalScore)

	// Timeout: -50.
	updated, err = svc.CallTimeout(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1150, updated.FinalScore)
	assert.Equal(t, 1, updated.Timeouts)
}

func TestSessionMutationRejections(t *testing.T) {
	t.Run("mutating a finalized session leaves it untouched", func(t *testing.T) {
		svc, repo, _ := newTestSessionService()
		ctx := context.Background()

		created, err := svc.CreateSession(ctx, 1)
		require.NoError(t, err)
		_, err = svc.AddPenalty(ctx, created.ID, "p1")
		require.NoError(t, err)
		finalized, err := svc.Finalize(ctx, created.ID)
		require.NoError(t, err)

		updatesBefore := repo.updates

		_, err = svc.MarkObstacle(ctx, created.ID, "obs1", domain.ObstacleCleared)
		assert.ErrorIs(t, err, ErrSessionFinalized)
		_, err = svc.AddPenalty(ctx, created.ID, "p2")
		assert.ErrorIs(t, err, ErrSessionFinalized)
		_, err = svc.CallTimeout(ctx, created.ID)
		assert.ErrorIs(t, err, ErrSessionFinalized)

		assert.Equal(t, updatesBefore, repo.updates)
		stored, err := svc.GetSession(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, finalized, stored)
	})

	t.Run("finalize while timer running is rejected", func(t *testing.T) {
		svc, repo, _ := newTestSessionService()
		ctx := context.Background()

		created, err := svc.CreateSession(ctx, 1)
		require.NoError(t, err)
		_, err = svc.StartTimer(ctx, created.ID)
		require.NoError(t, err)

		updatesBefore := repo.updates

		_, err = svc.Finalize(ctx, created.ID)
		assert.ErrorIs(t, err, ErrTimerRunning)
		assert.Equal(t, updatesBefore, repo.updates)

		stored, err := svc.GetSession(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsCompleted)
	})

	t.Run("unknown session id", func(t *testing.T) {
		svc, _, _ := newTestSessionService()

		_, err := svc.CallTimeout(context.Background(), 99)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestTimerLifecycle(t *testing.T) {
	svc, _, events := newTestSessionService()
	ctx := context.Background()

	clock := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	created, err := svc.CreateSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.StartTimer(ctx, created.ID)
	require.NoError(t, err)

	clock = clock.Add(42 * time.Second)
	stopped, err := svc.StopTimer(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 42_000, stopped.Duration)

	// Resume and stop again: accumulates.
	_, err = svc.StartTimer(ctx, created.ID)
	require.NoError(t, err)
	clock = clock.Add(8 * time.Second)
	stopped, err = svc.StopTimer(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 50_000, stopped.Duration)

	finalized, err := svc.Finalize(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, finalized.IsCompleted)
	assert.EqualValues(t, 50_000, finalized.Duration)
	assert.Equal(t, 1000, finalized.FinalScore)
	require.NotNil(t, finalized.EndTime)
	assert.Equal(t, clock, *finalized.EndTime)

	last := events.events[len(events.events)-1]
	assert.Equal(t, EventSessionFinalized, last.Type)
	assert.True(t, last.IsCompleted)
}

func TestPreviewScoreDoesNotMutate(t *testing.T) {
	svc, repo, _ := newTestSessionService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, 1)
	require.NoError(t, err)

	score, err := svc.PreviewScore(ctx, created.ID)
	require.NoError(t, err)

	// An untouched session previews at base points but keeps its zero cache.
	assert.Equal(t, 1000, score)
	assert.Equal(t, 0, repo.sessions[created.ID].FinalScore)
	assert.Equal(t, 0, repo.updates)
}
