package clock

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	var out []EventKind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	m := New(nil)
	assert.Equal(t, State{
		BreakLength:   5,
		SessionLength: 25,
		Remaining:     1500,
		Phase:         PhaseSession,
		Running:       false,
	}, m.Snapshot())
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{59, "00:59"},
		{60, "01:00"},
		{330, "05:30"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3600, "60:00"},
		{-1, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDisplay(tt.secs), "FormatDisplay(%d)", tt.secs)
	}
}

func TestFormatDisplay_PatternAndRoundTrip(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-5][0-9]:[0-5][0-9]$`)
	for s := 0; s < 3600; s++ {
		out := FormatDisplay(s)
		require.Regexp(t, pattern, out)
		back, err := ParseDisplay(out)
		require.NoError(t, err)
		require.Equal(t, s, back)
	}
}

func TestParseDisplay_Invalid(t *testing.T) {
	for _, in := range []string{"", "1:00", "00:60", "ab:cd", "0000", "00:0x"} {
		_, err := ParseDisplay(in)
		assert.Error(t, err, "ParseDisplay(%q)", in)
	}
}

func TestAdjustLength_Clamps(t *testing.T) {
	deltas := []int{-1000, -61, -60, -25, -24, -5, -4, -1, 0, 1, 4, 34, 35, 36, 55, 56, 1000}
	for _, target := range []Target{TargetSession, TargetBreak} {
		for _, d := range deltas {
			m := New(nil)
			m.AdjustLength(target, d)
			s := m.Snapshot()
			assert.GreaterOrEqual(t, s.SessionLength, MinLength)
			assert.LessOrEqual(t, s.SessionLength, MaxLength)
			assert.GreaterOrEqual(t, s.BreakLength, MinLength)
			assert.LessOrEqual(t, s.BreakLength, MaxLength)
		}
	}
}

func TestAdjustLength_StepsAtBounds(t *testing.T) {
	m := New(nil)
	for i := 0; i < 70; i++ {
		m.AdjustLength(TargetSession, 1)
	}
	assert.Equal(t, 60, m.Snapshot().SessionLength)
	assert.Equal(t, 3600, m.Snapshot().Remaining)

	for i := 0; i < 10; i++ {
		m.AdjustLength(TargetBreak, -1)
	}
	assert.Equal(t, 1, m.Snapshot().BreakLength)
}

func TestAdjustLength_SessionResyncsCountdown(t *testing.T) {
	m := New(nil)
	m.AdjustLength(TargetSession, 1)
	assert.Equal(t, 26, m.Snapshot().SessionLength)
	assert.Equal(t, 26*60, m.Snapshot().Remaining)

	m.AdjustLength(TargetSession, -2)
	assert.Equal(t, 24*60, m.Snapshot().Remaining)
}

func TestAdjustLength_BreakNeverTouchesCountdown(t *testing.T) {
	m := New(nil)
	m.AdjustLength(TargetBreak, 3)
	assert.Equal(t, 8, m.Snapshot().BreakLength)
	assert.Equal(t, 1500, m.Snapshot().Remaining)

	// Even during the break phase.
	m.state.Phase = PhaseBreak
	m.state.Remaining = 42
	m.AdjustLength(TargetBreak, 1)
	assert.Equal(t, 9, m.Snapshot().BreakLength)
	assert.Equal(t, 42, m.Snapshot().Remaining)
}

func TestAdjustLength_SessionDuringBreakKeepsCountdown(t *testing.T) {
	m := New(nil)
	m.state.Phase = PhaseBreak
	m.state.Remaining = 100
	m.AdjustLength(TargetSession, 5)
	assert.Equal(t, 30, m.Snapshot().SessionLength)
	assert.Equal(t, 100, m.Snapshot().Remaining)
}

func TestAdjustLength_NoopWhileRunning(t *testing.T) {
	rec := &recorder{}
	m := New(rec)
	m.ToggleRunning()
	m.Tick()
	before := m.Snapshot()
	gen := m.Generation()

	m.AdjustLength(TargetSession, 5)
	m.AdjustLength(TargetBreak, -3)

	assert.Equal(t, before, m.Snapshot())
	assert.Equal(t, gen, m.Generation())
	assert.Equal(t, []EventKind{EventRunning, EventLocked, EventLocked}, rec.kinds())
}

func TestToggleRunning_Events(t *testing.T) {
	rec := &recorder{}
	m := New(rec)

	m.ToggleRunning()
	require.True(t, m.Running())
	m.ToggleRunning()
	require.False(t, m.Running())

	assert.Equal(t, []EventKind{EventRunning, EventPaused}, rec.kinds())
	assert.True(t, rec.events[0].State.Running)
	assert.False(t, rec.events[1].State.Running)
}

func TestToggleRunning_TwiceIsIdentity(t *testing.T) {
	m := New(nil)
	m.ToggleRunning()
	for i := 0; i < 10; i++ {
		m.Tick()
	}
	before := m.Snapshot()

	m.ToggleRunning()
	m.ToggleRunning()

	assert.Equal(t, before.Running, m.Running())
	assert.Equal(t, before.Remaining, m.Snapshot().Remaining)
}

func TestToggleRunning_ChangesGeneration(t *testing.T) {
	m := New(nil)
	g0 := m.Generation()
	m.ToggleRunning()
	g1 := m.Generation()
	m.ToggleRunning()
	g2 := m.Generation()
	assert.NotEqual(t, g0, g1)
	assert.NotEqual(t, g1, g2)
}

func TestTick_NoopWhenPaused(t *testing.T) {
	rec := &recorder{}
	m := New(rec)
	m.Tick()
	assert.Equal(t, 1500, m.Snapshot().Remaining)
	assert.Empty(t, rec.events)
}

func TestTick_PhaseTransition(t *testing.T) {
	rec := &recorder{}
	m := New(rec)
	m.state.Remaining = 1
	m.ToggleRunning()

	m.Tick()
	assert.Equal(t, 0, m.Snapshot().Remaining)
	assert.Equal(t, PhaseSession, m.Snapshot().Phase)
	assert.Equal(t, "00:00", FormatDisplay(m.Snapshot().Remaining))

	m.Tick()
	assert.Equal(t, PhaseBreak, m.Snapshot().Phase)
	assert.Equal(t, m.Snapshot().BreakLength*60, m.Snapshot().Remaining)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventPhaseComplete, last.Kind)
	assert.True(t, last.AudioCue)
	assert.Equal(t, PhaseBreak, last.State.Phase)
	assert.Equal(t, PhaseSession, last.CompletedPhase())
}

func TestTick_BreakBackToSession(t *testing.T) {
	m := New(nil)
	m.AdjustLength(TargetSession, -15)
	m.state.Phase = PhaseBreak
	m.state.Remaining = 0
	m.ToggleRunning()

	m.Tick()
	assert.Equal(t, PhaseSession, m.Snapshot().Phase)
	assert.Equal(t, 600, m.Snapshot().Remaining)
}

func TestEndToEnd_DefaultCycle(t *testing.T) {
	rec := &recorder{}
	m := New(rec)
	m.ToggleRunning()

	for i := 0; i < 1500; i++ {
		m.Tick()
	}
	assert.Equal(t, 0, m.Snapshot().Remaining)
	assert.Equal(t, PhaseSession, m.Snapshot().Phase)

	m.Tick()
	assert.Equal(t, PhaseBreak, m.Snapshot().Phase)
	assert.Equal(t, 300, m.Snapshot().Remaining)
	assert.Equal(t, []EventKind{EventRunning, EventPhaseComplete}, rec.kinds())
}

func TestReset_FromAnyState(t *testing.T) {
	setups := map[string]func(m *Machine){
		"fresh":   func(m *Machine) {},
		"running": func(m *Machine) { m.ToggleRunning(); m.Tick() },
		"edited": func(m *Machine) {
			m.AdjustLength(TargetSession, 10)
			m.AdjustLength(TargetBreak, -3)
		},
		"break running": func(m *Machine) {
			m.state.Phase = PhaseBreak
			m.state.Remaining = 17
			m.ToggleRunning()
		},
		"break paused": func(m *Machine) {
			m.state.Phase = PhaseBreak
			m.state.BreakLength = 60
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			m := New(nil)
			setup(m)
			m.Reset()
			assert.Equal(t, State{
				Running:       false,
				Phase:         PhaseSession,
				BreakLength:   5,
				SessionLength: 25,
				Remaining:     1500,
			}, m.Snapshot())
		})
	}
}

func TestReset_Events(t *testing.T) {
	rec := &recorder{}
	m := New(rec)
	m.Reset()
	assert.Equal(t, []EventKind{EventReset}, rec.kinds())

	rec.events = nil
	m.ToggleRunning()
	gen := m.Generation()
	m.Reset()
	assert.Equal(t, []EventKind{EventRunning, EventPaused, EventReset}, rec.kinds())
	assert.NotEqual(t, gen, m.Generation())
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "Session", PhaseSession.String())
	assert.Equal(t, "Break", PhaseBreak.String())
	assert.Equal(t, "Unknown", Phase(9).String())
	assert.Equal(t, PhaseBreak, PhaseSession.Other())
	assert.Equal(t, PhaseSession, PhaseBreak.Other())
}

func TestSinkFunc(t *testing.T) {
	var got []EventKind
	m := New(SinkFunc(func(e Event) { got = append(got, e.Kind) }))
	m.ToggleRunning()
	assert.Equal(t, []EventKind{EventRunning}, got)
}
