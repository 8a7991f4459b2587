package domain

import (
	"errors"
	"time"
)

type ObstacleStatus string

const (
	ObstacleCleared ObstacleStatus = "CLEARED"
	ObstaclePartial ObstacleStatus = "PARTIAL"
	ObstacleFailed  ObstacleStatus = "FAILED"
)

func (s ObstacleStatus) IsValid() bool {
	switch s {
	case ObstacleCleared, ObstaclePartial, ObstacleFailed:
		return true
	}
	return false
}

var (
	ErrSessionFinalized = errors.New("session is already finalized")
	ErrTimerRunning     = errors.New("timer is running")
	ErrTimerNotRunning  = errors.New("timer is not running")
	ErrInvalidStatus    = errors.New("invalid obstacle status")
)

// RaceSession is one timed competition run by one team.
//
// Obstacles is sparse: an obstacle with no entry has not been attempted.
// FinalScore is a cache of ComputeScore over the current field values and is
// recomputed on every accepted mutation. Once IsCompleted is set the session
// is immutable and every further transition fails with ErrSessionFinalized.
type RaceSession struct {
	ID             uint                      `json:"id"`
	TeamID         uint                      `json:"team_id"`
	StartTime      *time.Time                `json:"start_time,omitempty"`
	EndTime        *time.Time                `json:"end_time,omitempty"`
	TimerStartedAt *time.Time                `json:"timer_started_at,omitempty"`
	Duration       int64                     `json:"duration"` // accumulated run time in milliseconds
	Timeouts       int                       `json:"timeouts"`
	Obstacles      map[string]ObstacleStatus `json:"obstacles"`
	Penalties      []string                  `json:"penalties"`
	TeamPhoto      string                    `json:"team_photo,omitempty"`
	RobotPhoto     string                    `json:"robot_photo,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
	IsCompleted    bool                      `json:"is_completed"`
	FinalScore     int                       `json:"final_score"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

func (s *RaceSession) TimerIsRunning() bool {
	return s.TimerStartedAt != nil
}

// Elapsed reports the accumulated run time including the live delta when the
// timer is running.
func (s *RaceSession) Elapsed(now time.Time) int64 {
	if s.TimerStartedAt != nil {
		return s.Duration + now.Sub(*s.TimerStartedAt).Milliseconds()
	}
	return s.Duration
}

// MarkObstacle records a status for an obstacle, replacing any prior mark.
func (s *RaceSession) MarkObstacle(obstacleID string, status ObstacleStatus) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	if s.Obstacles == nil {
		s.Obstacles = make(map[string]ObstacleStatus)
	}
	s.Obstacles[obstacleID] = status

	return nil
}

// AddPenalty appends a penalty type reference. The same type may be applied
// repeatedly.
func (s *RaceSession) AddPenalty(penaltyTypeID string) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}

	s.Penalties = append(s.Penalties, penaltyTypeID)

	return nil
}

func (s *RaceSession) CallTimeout() error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}

	s.Timeouts++

	return nil
}

func (s *RaceSession) SetNotes(notes string) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}

	s.Notes = notes

	return nil
}

// SetPhotos updates the team/robot photo blobs. A nil argument leaves the
// corresponding field untouched.
func (s *RaceSession) SetPhotos(teamPhoto, robotPhoto *string) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}

	if teamPhoto != nil {
		s.TeamPhoto = *teamPhoto
	}
	if robotPhoto != nil {
		s.RobotPhoto = *robotPhoto
	}

	return nil
}

// StartTimer begins (or resumes) the run clock. Accumulated time from earlier
// start/stop cycles is preserved.
func (s *RaceSession) StartTimer(now time.Time) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}
	if s.TimerStartedAt != nil {
		return ErrTimerRunning
	}

	started := now
	s.TimerStartedAt = &started
	if s.StartTime == nil {
		s.StartTime = &started
	}

	return nil
}

// StopTimer pauses the run clock, folding the live delta into Duration.
func (s *RaceSession) StopTimer(now time.Time) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}
	if s.TimerStartedAt == nil {
		return ErrTimerNotRunning
	}

	s.Duration += now.Sub(*s.TimerStartedAt).Milliseconds()
	s.TimerStartedAt = nil

	return nil
}

// Finalize irreversibly completes the run. The timer must be stopped first;
// Duration already holds the full accumulated run time at that point.
func (s *RaceSession) Finalize(now time.Time) error {
	if s.IsCompleted {
		return ErrSessionFinalized
	}
	if s.TimerStartedAt != nil {
		return ErrTimerRunning
	}

	ended := now
	s.EndTime = &ended
	s.IsCompleted = true

	return nil
}
