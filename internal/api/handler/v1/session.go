package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/request"
	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/response"
	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/service"
)

type SessionService interface {
	CreateSession(ctx context.Context, teamID uint) (domain.RaceSession, error)
	GetSession(ctx context.Context, id uint) (domain.RaceSession, error)
	ListSessions(ctx context.Context) ([]domain.RaceSession, error)
	PreviewScore(ctx context.Context, id uint) (int, error)
	MarkObstacle(ctx context.Context, sessionID uint, obstacleID string, status domain.ObstacleStatus) (domain.RaceSession, error)
	AddPenalty(ctx context.Context, sessionID uint, penaltyTypeID string) (domain.RaceSession, error)
	CallTimeout(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	UpdateNotes(ctx context.Context, sessionID uint, notes string) (domain.RaceSession, error)
	UpdatePhotos(ctx context.Context, sessionID uint, teamPhoto, robotPhoto *string) (domain.RaceSession, error)
	StartTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	StopTimer(ctx context.Context, sessionID uint) (domain.RaceSession, error)
	Finalize(ctx context.Context, sessionID uint) (domain.RaceSession, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleCreateSession godoc
// @Summary      Open a new run for a team
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest  true  "request body"
// @Success      201      {object}  domain.RaceSession
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [post]
// @Security BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.CreateSession(ctx.Request.Context(), req.TeamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", req.TeamID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.CreateSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleListSessions godoc
// @Summary      List all sessions, most recent first
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   domain.RaceSession
// @Failure      500  {object}  response.Err
// @Router       /sessions [get]
// @Security BearerAuth
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.ListSessions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get a session by ID
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [get]
// @Security BearerAuth
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	session, err := h.svc.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandlePreviewScore godoc
// @Summary      Recompute a session's score without mutating it
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  response.ScorePreviewResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/score [get]
// @Security BearerAuth
func (h *SessionHandler) HandlePreviewScore(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	score, err := h.svc.PreviewScore(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandlePreviewScore -> h.svc.PreviewScore -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.ScorePreviewResponse{
		SessionID: sessionID,
		Score:     score,
	})
}

// HandleMarkObstacle godoc
// @Summary      Record an obstacle result for a run
// @Description  Marks replace any prior mark for the same obstacle. Rejected once the session is finalized.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID   path      int                          true  "session ID"
// @Param        obstacleID  path      string                       true  "obstacle ID"
// @Param        request     body      request.MarkObstacleRequest  true  "request body"
// @Success      200         {object}  domain.RaceSession
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /sessions/{sessionID}/obstacles/{obstacleID} [put]
// @Security BearerAuth
func (h *SessionHandler) HandleMarkObstacle(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	obstacleID := ctx.Param("obstacleID")

	var req request.MarkObstacleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.MarkObstacle(ctx.Request.Context(), sessionID, obstacleID, domain.ObstacleStatus(req.Status))
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleMarkObstacle -> h.svc.MarkObstacle -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleAddPenalty godoc
// @Summary      Apply a penalty to a run
// @Description  The same penalty type may be applied repeatedly.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                        true  "session ID"
// @Param        request    body      request.AddPenaltyRequest  true  "request body"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/penalties [post]
// @Security BearerAuth
func (h *SessionHandler) HandleAddPenalty(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	var req request.AddPenaltyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.AddPenalty(ctx.Request.Context(), sessionID, req.PenaltyID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleAddPenalty -> h.svc.AddPenalty -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleCallTimeout godoc
// @Summary      Call a timeout against a run
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/timeouts [post]
// @Security BearerAuth
func (h *SessionHandler) HandleCallTimeout(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	session, err := h.svc.CallTimeout(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleCallTimeout -> h.svc.CallTimeout -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleUpdateNotes godoc
// @Summary      Update the free-form notes of an open run
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                         true  "session ID"
// @Param        request    body      request.UpdateNotesRequest  true  "request body"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/notes [put]
// @Security BearerAuth
func (h *SessionHandler) HandleUpdateNotes(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	var req request.UpdateNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.UpdateNotes(ctx.Request.Context(), sessionID, req.Notes)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleUpdateNotes -> h.svc.UpdateNotes -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleUpdatePhotos godoc
// @Summary      Attach team and robot photos to an open run
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                          true  "session ID"
// @Param        request    body      request.UpdatePhotosRequest  true  "request body"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/photos [put]
// @Security BearerAuth
func (h *SessionHandler) HandleUpdatePhotos(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	var req request.UpdatePhotosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.UpdatePhotos(ctx.Request.Context(), sessionID, req.TeamPhoto, req.RobotPhoto)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleUpdatePhotos -> h.svc.UpdatePhotos -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleStartTimer godoc
// @Summary      Start or resume the run timer
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/timer/start [post]
// @Security BearerAuth
func (h *SessionHandler) HandleStartTimer(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	session, err := h.svc.StartTimer(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleStartTimer -> h.svc.StartTimer -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleStopTimer godoc
// @Summary      Pause the run timer, keeping accumulated time
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/timer/stop [post]
// @Security BearerAuth
func (h *SessionHandler) HandleStopTimer(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	session, err := h.svc.StopTimer(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleStopTimer -> h.svc.StopTimer -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleFinalize godoc
// @Summary      Finalize a run, freezing its score
// @Description  Requires the timer to be stopped. Finalized runs are immutable.
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.RaceSession
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/finalize [post]
// @Security BearerAuth
func (h *SessionHandler) HandleFinalize(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "sessionID")
	if !ok {
		return
	}

	session, err := h.svc.Finalize(ctx.Request.Context(), sessionID)
	if err != nil {
		h.renderSessionErr(ctx, sessionID, fmt.Errorf("v1.HandleFinalize -> h.svc.Finalize -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

func (h *SessionHandler) renderSessionErr(ctx *gin.Context, sessionID uint, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
	case errors.Is(err, service.ErrSessionFinalized):
		response.RenderErr(ctx, response.ErrInvalidTransition(service.ErrSessionFinalized))
	case errors.Is(err, service.ErrTimerRunning):
		response.RenderErr(ctx, response.ErrInvalidTransition(service.ErrTimerRunning))
	case errors.Is(err, service.ErrTimerNotRunning):
		response.RenderErr(ctx, response.ErrInvalidTransition(service.ErrTimerNotRunning))
	case errors.Is(err, service.ErrInvalidStatus):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
