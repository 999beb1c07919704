package store

import "time"

// Phase names as stored in the events table.
const (
	PhaseSession = "session"
	PhaseBreak   = "break"
)

// Event kinds as stored in the events table.
const (
	KindRunning       = "running"
	KindPaused        = "paused"
	KindReset         = "reset"
	KindPhaseComplete = "phaseComplete"
	KindLocked        = "locked"
)

type Event struct {
	ID             int64
	Kind           string
	Phase          string // phase after the event
	CompletedPhase string // set for phaseComplete only
	SessionLength  int
	BreakLength    int
	Remaining      int // seconds
	Minutes        int // length of the completed phase
	At             time.Time
}

// EventFilter is used to filter events in queries.
type EventFilter struct {
	Kind  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// DailySummary aggregates completed phases per day.
type DailySummary struct {
	Date           string
	SessionCount   int
	SessionMinutes int
	BreakCount     int
	BreakMinutes   int
}
