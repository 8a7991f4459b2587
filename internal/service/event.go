package service

// Event describes a state change worth pushing to connected scoreboard
// clients. Published after the change is persisted.
type Event struct {
	Type        string `json:"type"`
	SessionID   uint   `json:"session_id,omitempty"`
	TeamID      uint   `json:"team_id,omitempty"`
	FinalScore  int    `json:"final_score,omitempty"`
	Duration    int64  `json:"duration,omitempty"`
	IsCompleted bool   `json:"is_completed,omitempty"`
}

const (
	EventSessionCreated   = "session.created"
	EventSessionUpdated   = "session.updated"
	EventSessionFinalized = "session.finalized"
	EventReset            = "reset"
)

type EventPublisher interface {
	Publish(event Event)
}
