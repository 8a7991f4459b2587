package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/trackside/scorekeeper-api/internal/api/handler/v1/response"
	"github.com/trackside/scorekeeper-api/internal/api/middleware"
	"github.com/trackside/scorekeeper-api/internal/domain"
)

type OperatorService interface {
	GetOperator(ctx context.Context, id uint) (domain.Operator, error)
}

func getOperatorFromContext(ctx *gin.Context, svc OperatorService) (domain.Operator, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyOperatorID)
	if !exists {
		return domain.Operator{}, response.ErrWrongCredentials(errors.New("missing operator id"))
	}

	operatorID, ok := value.(uint)
	if !ok {
		return domain.Operator{}, response.ErrWrongCredentials(errors.New("malformed operator id"))
	}

	operator, err := svc.GetOperator(ctx.Request.Context(), operatorID)
	if err != nil {
		return domain.Operator{}, response.ErrInternalServerError(fmt.Errorf("svc.GetOperator -> %w", err))
	}

	return operator, nil
}
