package app

import (
	"sync"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
)

// StatusBoard holds the pipeline status snapshot for observers. The
// scheduler and the cycle service write to it; the HTTP layer and any
// subscribed listeners only read. Listeners must not block.
type StatusBoard struct {
	mu        sync.RWMutex
	current   cycle.Status
	last      cycle.Outcome
	hasLast   bool
	listeners []func(cycle.Status)
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		current: cycle.Status{State: cycle.StateIdle, Message: "idle"},
	}
}

// Subscribe registers a listener invoked on every status transition.
func (b *StatusBoard) Subscribe(fn func(cycle.Status)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Set publishes a new status snapshot.
func (b *StatusBoard) Set(st cycle.Status) {
	b.mu.Lock()
	b.current = st
	listeners := make([]func(cycle.Status), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

// Finish publishes a terminal status and records the cycle outcome.
// The outcome is overwritten by the next cycle's.
func (b *StatusBoard) Finish(st cycle.Status, out cycle.Outcome) {
	b.mu.Lock()
	b.last = out
	b.hasLast = true
	b.mu.Unlock()
	b.Set(st)
}

// Current returns the latest published status.
func (b *StatusBoard) Current() cycle.Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// LastOutcome returns the most recent terminal outcome, if any cycle
// has finished since startup.
func (b *StatusBoard) LastOutcome() (cycle.Outcome, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.hasLast
}
