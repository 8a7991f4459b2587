package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/request"
	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/response"
	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/service"
)

type TeamService interface {
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	DeleteTeam(ctx context.Context, id uint) error
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleListTeams godoc
// @Summary      List registered teams
// @Tags         teams
// @Produce      json
// @Success      200  {array}   domain.Team
// @Failure      500  {object}  response.Err
// @Router       /teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	teams, err := h.svc.ListTeams(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTeams -> h.svc.ListTeams -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleCreateTeam godoc
// @Summary      Register a new team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTeamRequest  true  "request body"
// @Success      201      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams [post]
// @Security BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), domain.Team{
		Number: req.Number,
		Name:   req.Name,
		School: req.School,
	})
	if err != nil {
		if errors.Is(err, service.ErrTeamNumberExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrTeamNumberExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleGetTeam godoc
// @Summary      Get a team by ID
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  domain.Team
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID} [get]
// @Security BearerAuth
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "teamID")
	if !ok {
		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleUpdateTeam godoc
// @Summary      Update a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamID   path      int                        true  "team ID"
// @Param        request  body      request.UpdateTeamRequest  true  "request body"
// @Success      200      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams/{teamID} [put]
// @Security BearerAuth
func (h *TeamHandler) HandleUpdateTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "teamID")
	if !ok {
		return
	}

	var req request.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.UpdateTeam(ctx.Request.Context(), domain.Team{
		ID:     teamID,
		Number: req.Number,
		Name:   req.Name,
		School: req.School,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrTeamNumberExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTeamNumberExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateTeam -> h.svc.UpdateTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team
// @Description  Teams that are referenced by recorded sessions cannot be deleted.
// @Tags         teams
// @Produce      json
// @Param        teamID  path  int  true  "team ID"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID} [delete]
// @Security BearerAuth
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "teamID")
	if !ok {
		return
	}

	if err := h.svc.DeleteTeam(ctx.Request.Context(), teamID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrTeamHasSessions):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTeamHasSessions))
		default:
			err = fmt.Errorf("v1.HandleDeleteTeam -> h.svc.DeleteTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, raw)))
		return 0, false
	}

	return uint(id), true
}
