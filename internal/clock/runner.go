package clock

import (
	"context"
	"time"
)

// TickSource starts a periodic tick and returns its channel and a stop
// function.
type TickSource func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTickSource replaces the wall-clock ticker.
func WithTickSource(src TickSource) RunnerOption {
	return func(r *Runner) { r.source = src }
}

// WithOnTick registers a callback invoked after every applied tick.
func WithOnTick(fn func(State)) RunnerOption {
	return func(r *Runner) { r.onTick = fn }
}

// command is applied on the Run goroutine. done is closed once the ticker
// has been reconciled with the machine's new state.
type command struct {
	fn   func(*Machine)
	done chan struct{}
}

// Runner drives a Machine from a single goroutine. Commands are funneled
// through Do so the machine is only touched by the Run loop.
type Runner struct {
	m      *Machine
	cmds   chan command
	source TickSource
	onTick func(State)
}

func NewRunner(m *Machine, opts ...RunnerOption) *Runner {
	r := &Runner{
		m:      m,
		cmds:   make(chan command),
		source: realTicker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run owns the machine until ctx is done. The ticker exists only while the
// machine is running.
func (r *Runner) Run(ctx context.Context) error {
	var (
		ticks <-chan time.Time
		stop  func()
		gen   uint64
	)
	release := func() {
		if stop != nil {
			stop()
		}
		ticks, stop = nil, nil
	}
	defer release()

	reconcile := func() {
		if ticks != nil && (!r.m.Running() || r.m.Generation() != gen) {
			release()
		}
		if ticks == nil && r.m.Running() {
			gen = r.m.Generation()
			ticks, stop = r.source(time.Second)
		}
	}
	reconcile()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-r.cmds:
			c.fn(r.m)
			reconcile()
			close(c.done)
		case <-ticks:
			r.m.Tick()
			if r.onTick != nil {
				r.onTick(r.m.Snapshot())
			}
		}
	}
}

// Do runs fn on the Run goroutine and waits until fn has returned and the
// ticker has been acquired or released to match.
func (r *Runner) Do(ctx context.Context, fn func(*Machine)) error {
	c := command{fn: fn, done: make(chan struct{})}
	select {
	case r.cmds <- c:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot reads the machine state through the Run goroutine.
func (r *Runner) Snapshot(ctx context.Context) (State, error) {
	var s State
	err := r.Do(ctx, func(m *Machine) { s = m.Snapshot() })
	return s, err
}
