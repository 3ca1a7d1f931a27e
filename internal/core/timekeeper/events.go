package timekeeper

import (
	"time"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
)

// Mode is the coarse phase of the cycle.
type Mode string

const (
	ModeWork Mode = "work"
	ModeRest Mode = "rest"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	// EventRestStart fires on every Work to Rest transition.
	EventRestStart EventType = "rest_start"
	// EventWorkStart fires on every Rest to Work transition, natural or skipped.
	EventWorkStart EventType = "work_start"
	// EventProgress carries the countdown while the mode does not change.
	EventProgress EventType = "progress"
	// EventPauseChange fires when the cycle is paused or resumed.
	EventPauseChange EventType = "pause_change"
	// EventConfigChange fires after a setting has been clamped and applied.
	EventConfigChange EventType = "config_change"
)

const (
	StatusFocus = "Focus Time"
	StatusRest  = "Rest your eyes!"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Mode      Mode
	Remaining time.Duration
	Progress  float64
	Paused    bool
	RestType  escalation.RestType
	RestCount uint32
	Skipped   bool
	Status    string
	Config    model.CycleConfig
	At        time.Time
}

// Snapshot is a read-only view of the cycle state.
type Snapshot struct {
	Mode      Mode
	Elapsed   time.Duration
	Remaining time.Duration
	Progress  float64
	Paused    bool
	RestType  escalation.RestType
	RestCount uint32
	Config    model.CycleConfig
}
