package timekeeper

import (
	"time"

	"zenpomodoro/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventSessionComplete EventType = "session_complete"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type  EventType
	State model.TimerState
	At    time.Time
}
