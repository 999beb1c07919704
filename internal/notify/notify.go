// Package notify renders timer lifecycle events: toasts, the terminal
// bell, log lines and the history table.
package notify

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/sadopc/clock/internal/clock"
)

type multi []clock.Sink

func (m multi) Notify(e clock.Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

// Multi fans every event out to sinks in order. Nil sinks are skipped.
func Multi(sinks ...clock.Sink) clock.Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// When forwards events to sink only while enabled reports true.
func When(enabled func() bool, sink clock.Sink) clock.Sink {
	return clock.SinkFunc(func(e clock.Event) {
		if enabled() {
			sink.Notify(e)
		}
	})
}

// Queue buffers events until the owner drains them. The TUI drains it
// after every update and turns the events into toasts.
type Queue struct {
	pending []clock.Event
}

func (q *Queue) Notify(e clock.Event) {
	q.pending = append(q.pending, e)
}

// Drain returns and clears the buffered events.
func (q *Queue) Drain() []clock.Event {
	out := q.pending
	q.pending = nil
	return out
}

// Bell rings the terminal bell on phase completion.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Notify(e clock.Event) {
	if e.Kind == clock.EventPhaseComplete && e.AudioCue {
		b.w.Write([]byte("\a"))
	}
}

// Logger writes one structured line per event.
type Logger struct {
	log *log.Logger
}

func NewLogger(l *log.Logger) *Logger {
	return &Logger{log: l}
}

func (l *Logger) Notify(e clock.Event) {
	kv := []any{
		"phase", e.State.Phase,
		"remaining", clock.FormatDisplay(e.State.Remaining),
		"session", e.State.SessionLength,
		"break", e.State.BreakLength,
	}
	switch e.Kind {
	case clock.EventLocked:
		l.log.Debug("length is locked while running", kv...)
	case clock.EventPhaseComplete:
		l.log.Info("phase complete", append([]any{"completed", e.CompletedPhase()}, kv...)...)
	default:
		l.log.Info(string(e.Kind), kv...)
	}
}

// Message returns the toast text for an event.
func Message(e clock.Event) string {
	switch e.Kind {
	case clock.EventRunning:
		return "Timer is running!"
	case clock.EventPaused:
		return "Timer is paused"
	case clock.EventReset:
		return "Timer has been reset"
	case clock.EventPhaseComplete:
		return e.CompletedPhase().String() + " complete! " + e.State.Phase.String() + " started"
	case clock.EventLocked:
		return "Pause the timer to change lengths"
	}
	return ""
}
