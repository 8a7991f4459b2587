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

type ScoringConfigService interface {
	GetConfig(ctx context.Context) (domain.ScoringConfig, error)
	UpdateConfig(ctx context.Context, cfg domain.ScoringConfig) (domain.ScoringConfig, error)
}

type ScoringConfigHandler struct {
	svc       ScoringConfigService
	operators OperatorService
}

func NewScoringConfigHandler(svc ScoringConfigService, operators OperatorService) *ScoringConfigHandler {
	return &ScoringConfigHandler{
		svc:       svc,
		operators: operators,
	}
}

// HandleGetConfig godoc
// @Summary      Get the active scoring configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  domain.ScoringConfig
// @Failure      500  {object}  response.Err
// @Router       /config [get]
// @Security BearerAuth
func (h *ScoringConfigHandler) HandleGetConfig(ctx *gin.Context) {
	cfg, err := h.svc.GetConfig(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetConfig -> h.svc.GetConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, cfg)
}

// HandleUpdateConfig godoc
// @Summary      Replace the scoring configuration
// @Description  Admin only. Existing sessions keep their recorded marks; scores of open sessions are recomputed against the new configuration on their next mutation.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateConfigRequest  true  "request body"
// @Success      200      {object}  domain.ScoringConfig
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /config [put]
// @Security BearerAuth
func (h *ScoringConfigHandler) HandleUpdateConfig(ctx *gin.Context) {
	operator, respErr := getOperatorFromContext(ctx, h.operators)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if operator.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("admin role required")))
		return
	}

	var req request.UpdateConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	cfg, err := h.svc.UpdateConfig(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidConfig) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateConfig -> h.svc.UpdateConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, cfg)
}
