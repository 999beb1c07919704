package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCycle(m *clock.Machine) {
	m.ToggleRunning()
	for i := 0; i <= 1500; i++ {
		m.Tick()
	}
}

func TestMulti_FanOutInOrder(t *testing.T) {
	var order []string
	a := clock.SinkFunc(func(clock.Event) { order = append(order, "a") })
	b := clock.SinkFunc(func(clock.Event) { order = append(order, "b") })

	m := clock.New(Multi(a, nil, b))
	m.ToggleRunning()

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestWhen(t *testing.T) {
	q := &Queue{}
	enabled := false
	m := clock.New(When(func() bool { return enabled }, q))

	m.ToggleRunning()
	assert.Empty(t, q.Drain())

	enabled = true
	m.ToggleRunning()
	assert.Len(t, q.Drain(), 1)
}

func TestQueue_Drain(t *testing.T) {
	q := &Queue{}
	m := clock.New(q)
	m.ToggleRunning()
	m.Reset()

	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, clock.EventRunning, events[0].Kind)
	assert.Equal(t, clock.EventPaused, events[1].Kind)
	assert.Equal(t, clock.EventReset, events[2].Kind)
	assert.Empty(t, q.Drain())
}

func TestBell_RingsOnPhaseComplete(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBell(&buf)
	m := clock.New(bell)

	m.ToggleRunning()
	assert.Empty(t, buf.String(), "toggle should not ring")
	for i := 0; i <= 1500; i++ {
		m.Tick()
	}

	assert.Equal(t, "\a", buf.String(), "one cue per completed phase")

	m.Reset()
	assert.Equal(t, "\a", buf.String(), "reset should not ring")
}

func TestLogger_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := clock.New(NewLogger(l))

	runCycle(m)
	m.AdjustLength(clock.TargetSession, 1)

	out := buf.String()
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "phase complete")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Session")
	assert.Contains(t, out, "05:00")
	assert.Contains(t, out, "locked")
}

func TestMessage(t *testing.T) {
	tests := []struct {
		kind clock.EventKind
		want string
	}{
		{clock.EventRunning, "Timer is running!"},
		{clock.EventPaused, "Timer is paused"},
		{clock.EventReset, "Timer has been reset"},
		{clock.EventLocked, "Pause the timer to change lengths"},
		{clock.EventKind("other"), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(clock.Event{Kind: tt.kind}))
	}

	done := clock.Event{Kind: clock.EventPhaseComplete, State: clock.State{Phase: clock.PhaseBreak}}
	assert.Equal(t, "Session complete! Break started", Message(done))
}

func TestHistory_RecordsEvents(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	h := NewHistory(s, nil)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return at }

	m := clock.New(h)
	runCycle(m)

	events, err := s.ListEvents(store.EventFilter{Kind: store.KindPhaseComplete})
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, store.PhaseBreak, e.Phase)
	assert.Equal(t, store.PhaseSession, e.CompletedPhase)
	assert.Equal(t, 25, e.Minutes)
	assert.Equal(t, 300, e.Remaining)
	assert.True(t, e.At.Equal(at))

	all, err := s.ListEvents(store.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHistory_ReportsWriteErrors(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	s.Close()

	var got error
	m := clock.New(NewHistory(s, func(err error) { got = err }))
	m.ToggleRunning()

	require.Error(t, got)
	assert.True(t, strings.Contains(got.Error(), "record event"))
	assert.True(t, m.Running(), "store failures never block the machine")
}
