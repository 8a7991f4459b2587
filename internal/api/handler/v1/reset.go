package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/response"
	"github.com/trackside/scorekeeper-api/internal/domain"
)

type ResetService interface {
	ResetAll(ctx context.Context) error
}

type ResetHandler struct {
	svc       ResetService
	operators OperatorService
}

func NewResetHandler(svc ResetService, operators OperatorService) *ResetHandler {
	return &ResetHandler{
		svc:       svc,
		operators: operators,
	}
}

// HandleReset godoc
// @Summary      Wipe all sessions and restore seed data
// @Description  Admin only. Deletes every session, restores the seed teams and the default scoring configuration.
// @Tags         admin
// @Produce      json
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reset [post]
// @Security BearerAuth
func (h *ResetHandler) HandleReset(ctx *gin.Context) {
	operator, respErr := getOperatorFromContext(ctx, h.operators)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if operator.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("admin role required")))
		return
	}

	if err := h.svc.ResetAll(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleReset -> h.svc.ResetAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
