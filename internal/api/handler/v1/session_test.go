package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/service"
)

type fakeSessionService struct {
	createFn   func(ctx context.Context, teamID uint) (domain.RaceSession, error)
	getFn      func(ctx context.Context, id uint) (domain.RaceSession, error)
	listFn     func(ctx context.Context) ([]domain.RaceSession, error)
	previewFn  func(ctx context.Context, id uint) (int, error)
	markFn     func(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error)
	penaltyFn  func(ctx context.Context, sessionID uint, penaltyTypeID string) (domain.RaceSession, error)
	timeoutFn  func(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	notesFn    func(ctx context.Context, sessionID uint, notes string) (domain.RaceSession, error)
	photosFn   func(ctx context.Context, sessionID uint, teamPhoto, robotPhoto *string) (domain.RaceSession, error)
	startFn    func(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	stopFn     func(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	finalizeFn func(ctx context.Context, sessionID uint) (domain.RaceSession, error)
}

func (f *fakeSessionService) CreateSession(ctx context.Context, teamID uint) (domain.RaceSession, error) {
	return f.createFn(ctx, teamID)
}

func (f *fakeSessionService) GetSession(ctx context.Context, id uint) (domain.RaceSession, error) {
	return f.getFn(ctx, id)
}

func (f *fakeSessionService) ListSessions(ctx context.Context) ([]domain.RaceSession, error) {
	return f.listFn(ctx)
}

func (f *fakeSessionService) PreviewScore(ctx context.Context, id uint) (int, error) {
	return f.previewFn(ctx, id)
}

func (f *fakeSessionService) MarkObstacle(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error) {
	return f.markFn(ctx, sessionID, obstacleID, status)
}

func (f *fakeSessionService) AddPenalty(ctx context.Context, sessionID uint, penaltyTypeID string) (domain.RaceSession, error) {
	return f.penaltyFn(ctx, sessionID, penaltyTypeID)
}

func (f *fakeSessionService) CallTimeout(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return f.timeoutFn(ctx, sessionID)
}

func (f *fakeSessionService) UpdateNotes(ctx context.Context, sessionID uint, notes string) (domain.RaceSession, error) {
	return f.notesFn(ctx, sessionID, notes)
}

func (f *fakeSessionService) UpdatePhotos(ctx context.Context, sessionID uint, teamPhoto, robotPhoto *string) (domain.RaceSession, error) {
	return f.photosFn(ctx, sessionID, teamPhoto, robotPhoto)
}

func (f *fakeSessionService) StartTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return f.startFn(ctx, sessionID)
}

func (f *fakeSessionService) StopTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return f.stopFn(ctx, sessionID)
}

func (f *fakeSessionService) Finalize(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
	return f.finalizeFn(ctx, sessionID)
}

func newSessionTestRouter(svc SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewSessionHandler(svc)

	router := gin.New()
	router.POST("/sessions", handler.HandleCreateSession)
	router.GET("/sessions/:sessionID", handler.HandleGetSession)
	router.GET("/sessions/:sessionID/score", handler.HandlePreviewScore)
	router.PUT("/sessions/:sessionID/obstacles/:obstacleID", handler.HandleMarkObstacle)
	router.POST("/sessions/:sessionID/penalties", handler.HandleAddPenalty)
	router.POST("/sessions/:sessionID/timer/stop", handler.HandleStopTimer)
	router.POST("/sessions/:sessionID/finalize", handler.HandleFinalize)

	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

func TestHandleCreateSession(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		svc        *fakeSessionService
		wantStatus int
	}{
		{
			name: "created",
			body: `{"team_id":1}`,
			svc: &fakeSessionService{
				createFn: func(ctx context.Context, teamID uint) (domain.RaceSession, error) {
					return domain.RaceSession{ID: 7, TeamID: teamID, CreatedAt: now}, nil
				},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "unknown team",
			body: `{"team_id":99}`,
			svc: &fakeSessionService{
				createFn: func(ctx context.Context, teamID uint) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrTeamNotFound
				},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing team id",
			body:       `{}`,
			svc:        &fakeSessionService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"team_id":`,
			svc:        &fakeSessionService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionTestRouter(tt.svc)

			resp := performRequest(t, router, http.MethodPost, "/sessions", tt.body)

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandleGetSession(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		svc        *fakeSessionService
		wantStatus int
	}{
		{
			name: "found",
			path: "/sessions/7",
			svc: &fakeSessionService{
				getFn: func(ctx context.Context, id uint) (domain.RaceSession, error) {
					return domain.RaceSession{ID: id, TeamID: 1}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/sessions/404",
			svc: &fakeSessionService{
				getFn: func(ctx context.Context, id uint) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrSessionNotFound
				},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id",
			path:       "/sessions/abc",
			svc:        &fakeSessionService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero id",
			path:       "/sessions/0",
			svc:        &fakeSessionService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionTestRouter(tt.svc)

			resp := performRequest(t, router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandleMarkObstacle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeSessionService
		wantStatus int
	}{
		{
			name: "marked",
			body: `{"status":"CLEARED"}`,
			svc: &fakeSessionService{
				markFn: func(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error) {
					return domain.RaceSession{
						ID:        sessionID,
						Obstacles: map[string]domain.ObstacleStatus{obstacleID: status},
					}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid status rejected before service",
			body:       `{"status":"DONE"}`,
			svc:        &fakeSessionService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "finalized session conflicts",
			body: `{"status":"CLEARED"}`,
			svc: &fakeSessionService{
				markFn: func(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrSessionFinalized
				},
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionTestRouter(tt.svc)

			resp := performRequest(t, router, http.MethodPut, "/sessions/7/obstacles/obs1", tt.body)

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandleStopTimer(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeSessionService
		wantStatus int
	}{
		{
			name: "stopped",
			svc: &fakeSessionService{
				stopFn: func(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
					return domain.RaceSession{ID: sessionID, Duration: 42000}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "timer not running conflicts",
			svc: &fakeSessionService{
				stopFn: func(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrTimerNotRunning
				},
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionTestRouter(tt.svc)

			resp := performRequest(t, router, http.MethodPost, "/sessions/7/timer/stop", "")

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandleFinalize(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeSessionService
		wantStatus int
	}{
		{
			name: "finalized",
			svc: &fakeSessionService{
				finalizeFn: func(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
					return domain.RaceSession{ID: sessionID, IsCompleted: true, FinalScore: 1150}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "already finalized conflicts",
			svc: &fakeSessionService{
				finalizeFn: func(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrSessionFinalized
				},
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "timer still running conflicts",
			svc: &fakeSessionService{
				finalizeFn: func(ctx context.Context, sessionID uint) (domain.RaceSession, error) {
					return domain.RaceSession{}, service.ErrTimerRunning
				},
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionTestRouter(tt.svc)

			resp := performRequest(t, router, http.MethodPost, "/sessions/7/finalize", "")

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandlePreviewScore(t *testing.T) {
	router := newSessionTestRouter(&fakeSessionService{
		previewFn: func(ctx context.Context, id uint) (int, error) {
			return 1150, nil
		},
	})

	resp := performRequest(t, router, http.MethodGet, "/sessions/7/score", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"session_id":7,"score":1150}`, resp.Body.String())
}
