// Package clock implements the session/break countdown state machine.
package clock

// Phase is the part of the cycle currently being counted down.
type Phase int

const (
	PhaseSession Phase = iota
	PhaseBreak
)

var phaseNames = map[Phase]string{
	PhaseSession: "Session",
	PhaseBreak:   "Break",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Other returns the phase that follows p.
func (p Phase) Other() Phase {
	if p == PhaseSession {
		return PhaseBreak
	}
	return PhaseSession
}

// Target selects which length AdjustLength edits.
type Target int

const (
	TargetSession Target = iota
	TargetBreak
)

const (
	DefaultSessionLength = 25
	DefaultBreakLength   = 5

	MinLength = 1
	MaxLength = 60
)

// State is a snapshot of the timer.
type State struct {
	BreakLength   int // minutes
	SessionLength int // minutes
	Remaining     int // seconds
	Phase         Phase
	Running       bool
}

// DefaultState is the state on launch and after Reset.
func DefaultState() State {
	return State{
		BreakLength:   DefaultBreakLength,
		SessionLength: DefaultSessionLength,
		Remaining:     DefaultSessionLength * 60,
		Phase:         PhaseSession,
	}
}

// LengthOf returns the configured length of phase p in minutes.
func (s State) LengthOf(p Phase) int {
	if p == PhaseBreak {
		return s.BreakLength
	}
	return s.SessionLength
}

func clampLength(v int) int {
	return max(MinLength, min(MaxLength, v))
}
