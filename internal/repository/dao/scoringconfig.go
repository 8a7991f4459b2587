package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("scoring config not found")

type ObstacleItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxPoints int    `json:"max_points"`
}

type PenaltyItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ScoringConfig is a single-row table; Get always reads the first row and
// Save upserts it.
type ScoringConfig struct {
	ID uint `gorm:"primaryKey"`

	BasePoints       int `gorm:"not null"`
	TimeoutDeduction int `gorm:"not null"`

	Obstacles []ObstacleItem `gorm:"serializer:json"`
	Penalties []PenaltyItem  `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ScoringConfigDAO struct {
	db *gorm.DB
}

func NewScoringConfigDAO(db *gorm.DB) *ScoringConfigDAO {
	return &ScoringConfigDAO{
		db: db,
	}
}

func (d *ScoringConfigDAO) Get(ctx context.Context) (ScoringConfig, error) {
	var config ScoringConfig

	result := d.db.WithContext(ctx).Order("id asc").First(&config)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScoringConfig{}, ErrConfigNotFound
		}

		return ScoringConfig{}, result.Error
	}

	return config, nil
}

func (d *ScoringConfigDAO) Save(ctx context.Context, config ScoringConfig) (ScoringConfig, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ScoringConfig

		result := tx.Order("id asc").First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return tx.Create(&config).Error
			}

			return result.Error
		}

		config.ID = existing.ID
		config.CreatedAt = existing.CreatedAt

		return tx.Save(&config).Error
	})
	if err != nil {
		return ScoringConfig{}, err
	}

	return config, nil
}
