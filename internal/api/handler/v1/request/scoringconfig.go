package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/trackside/scorekeeper-api/internal/domain"
)

type ObstacleDefinition struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxPoints int    `json:"max_points"`
}

type PenaltyDefinition struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type UpdateConfigRequest struct {
	BasePoints       int                  `json:"base_points"`
	TimeoutDeduction int                  `json:"timeout_deduction"`
	Obstacles        []ObstacleDefinition `json:"obstacles"`
	Penalties        []PenaltyDefinition  `json:"penalties"`
}

func (req *UpdateConfigRequest) ToDomain() domain.ScoringConfig {
	cfg := domain.ScoringConfig{
		BasePoints:       req.BasePoints,
		TimeoutDeduction: req.TimeoutDeduction,
		Obstacles:        make([]domain.Obstacle, 0, len(req.Obstacles)),
		Penalties:        make([]domain.PenaltyType, 0, len(req.Penalties)),
	}

	for _, obs := range req.Obstacles {
		cfg.Obstacles = append(cfg.Obstacles, domain.Obstacle{
			ID:        obs.ID,
			Name:      obs.Name,
			MaxPoints: obs.MaxPoints,
		})
	}

	for _, pen := range req.Penalties {
		cfg.Penalties = append(cfg.Penalties, domain.PenaltyType{
			ID:     pen.ID,
			Name:   pen.Name,
			Points: pen.Points,
		})
	}

	return cfg
}

func (req *UpdateConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TimeoutDeduction, validation.Min(0)),
		validation.Field(&req.Obstacles, validation.Required, validation.Each(validation.By(validateObstacleDefinition))),
		validation.Field(&req.Penalties, validation.Each(validation.By(validatePenaltyDefinition))),
	)
}

func validateObstacleDefinition(value interface{}) error {
	def, ok := value.(ObstacleDefinition)
	if !ok {
		return fmt.Errorf("invalid obstacle definition")
	}

	return validation.ValidateStruct(&def,
		validation.Field(&def.ID, validation.Required),
		validation.Field(&def.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&def.MaxPoints, validation.Min(0)),
	)
}

func validatePenaltyDefinition(value interface{}) error {
	def, ok := value.(PenaltyDefinition)
	if !ok {
		return fmt.Errorf("invalid penalty definition")
	}

	return validation.ValidateStruct(&def,
		validation.Field(&def.ID, validation.Required),
		validation.Field(&def.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&def.Points, validation.Min(0)),
	)
}
