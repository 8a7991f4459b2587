package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateObstacleID = errors.New("duplicate obstacle id")
	ErrDuplicatePenaltyID  = errors.New("duplicate penalty id")
	ErrNegativePoints      = errors.New("point values must not be negative")
)

type Obstacle struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxPoints int    `json:"max_points"`
}

type PenaltyType struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ScoringConfig defines the scoring surface shared by every session scored
// under it. Sessions snapshot their final score at mutation time, so editing
// the config never re-scores historical runs.
type ScoringConfig struct {
	BasePoints       int           `json:"base_points"`
	TimeoutDeduction int           `json:"timeout_deduction"`
	Obstacles        []Obstacle    `json:"obstacles"`
	Penalties        []PenaltyType `json:"penalties"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (c ScoringConfig) Validate() error {
	if c.TimeoutDeduction < 0 {
		return fmt.Errorf("timeout_deduction: %w", ErrNegativePoints)
	}

	seen := make(map[string]bool, len(c.Obstacles))
	for _, o := range c.Obstacles {
		if seen[o.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateObstacleID, o.ID)
		}
		seen[o.ID] = true

		if o.MaxPoints < 0 {
			return fmt.Errorf("obstacle %q: %w", o.ID, ErrNegativePoints)
		}
	}

	seen = make(map[string]bool, len(c.Penalties))
	for _, p := range c.Penalties {
		if seen[p.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicatePenaltyID, p.ID)
		}
		seen[p.ID] = true

		if p.Points < 0 {
			return fmt.Errorf("penalty %q: %w", p.ID, ErrNegativePoints)
		}
	}

	return nil
}

// ComputeScore evaluates a session against a scoring configuration.
// It is pure: the result depends only on the arguments and neither is mutated.
// Partial credit rounds down, penalties referencing removed penalty types
// contribute nothing, and the result never drops below zero.
func ComputeScore(s RaceSession, cfg ScoringConfig) int {
	score := cfg.BasePoints

	for _, obs := range cfg.Obstacles {
		switch s.Obstacles[obs.ID] {
		case ObstacleCleared:
			score += obs.MaxPoints
		case ObstaclePartial:
			score += obs.MaxPoints / 2
		}
	}

	for _, penaltyID := range s.Penalties {
		for _, p := range cfg.Penalties {
			if p.ID == penaltyID {
				score -= p.Points
				break
			}
		}
	}

	score -= s.Timeouts * cfg.TimeoutDeduction

	if score < 0 {
		score = 0
	}

	return score
}
