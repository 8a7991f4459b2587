package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// RaceSession keeps the per-obstacle marks and the penalty list as JSON
// columns. The obstacle map is sparse: a missing key means the obstacle was
// never attempted.
type RaceSession struct {
	ID uint `gorm:"primaryKey"`

	TeamID uint `gorm:"index;not null"`

	StartTime      *time.Time
	EndTime        *time.Time
	TimerStartedAt *time.Time
	Duration       int64 `gorm:"not null;default:0"`

	Timeouts  int               `gorm:"not null;default:0"`
	Obstacles map[string]string `gorm:"serializer:json"`
	Penalties []string          `gorm:"serializer:json"`

	TeamPhoto  string
	RobotPhoto string
	Notes      string

	IsCompleted bool `gorm:"not null;default:false"`
	FinalScore  int  `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session RaceSession) (RaceSession, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return RaceSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (RaceSession, error) {
	var session RaceSession

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RaceSession{}, ErrSessionNotFound
		}

		return RaceSession{}, result.Error
	}

	return session, nil
}

// FindAll returns sessions most-recent-created first.
func (d *SessionDAO) FindAll(ctx context.Context) ([]RaceSession, error) {
	var sessions []RaceSession

	result := d.db.WithContext(ctx).Order("created_at desc, id desc").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) Update(ctx context.Context, session RaceSession) (RaceSession, error) {
	result := d.db.WithContext(ctx).Save(&session)
	if result.Error != nil {
		return RaceSession{}, result.Error
	}
	if result.RowsAffected == 0 {
		return RaceSession{}, ErrSessionNotFound
	}

	return session, nil
}

func (d *SessionDAO) DeleteAll(ctx context.Context) error {
	return d.db.WithContext(ctx).Where("1 = 1").Delete(&RaceSession{}).Error
}
