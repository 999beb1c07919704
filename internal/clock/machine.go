package clock

// Machine is the session/break timer. It is not safe for concurrent use;
// a single owner (the Bubble Tea loop or a Runner) drives it.
type Machine struct {
	state State
	sink  Sink

	// gen changes whenever the tick source has to be acquired or released.
	gen uint64
}

// New returns a machine in the default state. A nil sink discards events.
func New(sink Sink) *Machine {
	if sink == nil {
		sink = Discard
	}
	return &Machine{
		state: DefaultState(),
		sink:  sink,
	}
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State { return m.state }

func (m *Machine) Running() bool { return m.state.Running }

// Generation identifies the current run. Ticks scheduled under an older
// generation must be discarded.
func (m *Machine) Generation() uint64 { return m.gen }

// AdjustLength adds delta minutes to the target length, clamped to
// [MinLength, MaxLength]. Editing the session length while in the session
// phase also rewinds the countdown. Break edits never touch the countdown.
func (m *Machine) AdjustLength(target Target, delta int) {
	if m.state.Running {
		m.emit(EventLocked, false)
		return
	}
	switch target {
	case TargetBreak:
		m.state.BreakLength = clampLength(m.state.BreakLength + delta)
	case TargetSession:
		m.state.SessionLength = clampLength(m.state.SessionLength + delta)
		if m.state.Phase == PhaseSession {
			m.state.Remaining = m.state.SessionLength * 60
		}
	}
}

// ToggleRunning starts or pauses the countdown.
func (m *Machine) ToggleRunning() {
	m.state.Running = !m.state.Running
	m.gen++
	if m.state.Running {
		m.emit(EventRunning, false)
	} else {
		m.emit(EventPaused, false)
	}
}

// Reset stops the timer and restores the default lengths and countdown.
func (m *Machine) Reset() {
	if m.state.Running {
		m.state.Running = false
		m.emit(EventPaused, false)
	}
	m.state = DefaultState()
	m.gen++
	m.emit(EventReset, false)
}

// Tick advances the countdown by one second. At 00:00 the next tick
// switches phase instead of decrementing.
func (m *Machine) Tick() {
	if !m.state.Running {
		return
	}
	if m.state.Remaining > 0 {
		m.state.Remaining--
		return
	}
	m.state.Phase = m.state.Phase.Other()
	m.state.Remaining = m.state.LengthOf(m.state.Phase) * 60
	m.emit(EventPhaseComplete, true)
}

func (m *Machine) emit(kind EventKind, audio bool) {
	m.sink.Notify(Event{Kind: kind, AudioCue: audio, State: m.state})
}
