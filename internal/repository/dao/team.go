package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTeamNumberExists = errors.New("team number already exists")
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamHasSessions  = errors.New("team has recorded sessions")
)

type Team struct {
	ID uint `gorm:"primaryKey"`

	Number string `gorm:"unique;not null"`
	Name   string `gorm:"not null"`
	School string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_teams_number"`) {
			return Team{}, ErrTeamNumberExists
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindAll(ctx context.Context) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Order("id asc").Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) Update(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Save(&team)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Team{}, ErrTeamNumberExists
		}

		return Team{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Team{}, ErrTeamNotFound
	}

	return team, nil
}

// Delete removes a team unless any session still references it, preserving
// the terminal record of every recorded run.
func (d *TeamDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RaceSession{}).Where("team_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTeamHasSessions
		}

		result := tx.Delete(&Team{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTeamNotFound
		}

		return nil
	})
}

// ReplaceAll swaps the whole registry for the given teams in one transaction.
// Used by the destructive reset; sessions must be cleared first.
func (d *TeamDAO) ReplaceAll(ctx context.Context, teams []Team) ([]Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Team{}).Error; err != nil {
			return err
		}

		for i := range teams {
			if err := tx.Create(&teams[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return teams, nil
}
