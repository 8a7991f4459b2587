package service

import (
	"context"
	"fmt"

	"github.com/trackside/scorekeeper-api/internal/domain"
)

type OperatorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Operator, error)
}

type OperatorService struct {
	repo OperatorRepository
}

func NewOperatorService(repo OperatorRepository) *OperatorService {
	return &OperatorService{
		repo: repo,
	}
}

func (s *OperatorService) GetOperator(ctx context.Context, id uint) (domain.Operator, error) {
	operator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Operator{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return operator, nil
}
