package clock

// EventKind identifies a lifecycle event.
type EventKind string

const (
	EventRunning       EventKind = "running"
	EventPaused        EventKind = "paused"
	EventReset         EventKind = "reset"
	EventPhaseComplete EventKind = "phaseComplete"
	// EventLocked reports a length edit ignored because the timer runs.
	EventLocked EventKind = "locked"
)

// Event is delivered to a Sink after the transition it describes.
type Event struct {
	Kind     EventKind
	AudioCue bool
	State    State // state after the transition
}

// CompletedPhase returns the phase that just ended for a phaseComplete event.
func (e Event) CompletedPhase() Phase {
	return e.State.Phase.Other()
}

// Sink receives lifecycle events from a Machine.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

type discard struct{}

func (discard) Notify(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}
