package notify

import (
	"time"

	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/store"
)

// History records every event in the store. Write failures go to onErr
// and never reach the state machine.
type History struct {
	store *store.Store
	now   func() time.Time
	onErr func(error)
}

func NewHistory(s *store.Store, onErr func(error)) *History {
	if onErr == nil {
		onErr = func(error) {}
	}
	return &History{store: s, now: time.Now, onErr: onErr}
}

func (h *History) Notify(e clock.Event) {
	rec := store.Event{
		Kind:          string(e.Kind),
		Phase:         storePhase(e.State.Phase),
		SessionLength: e.State.SessionLength,
		BreakLength:   e.State.BreakLength,
		Remaining:     e.State.Remaining,
		At:            h.now(),
	}
	if e.Kind == clock.EventPhaseComplete {
		done := e.CompletedPhase()
		rec.CompletedPhase = storePhase(done)
		rec.Minutes = e.State.LengthOf(done)
	}
	if _, err := h.store.RecordEvent(rec); err != nil {
		h.onErr(err)
	}
}

func storePhase(p clock.Phase) string {
	if p == clock.PhaseBreak {
		return store.PhaseBreak
	}
	return store.PhaseSession
}
