// Package pointer tracks the latest pointer sample the simulation polls once
// per frame.
package pointer

import "time"

// CoalesceWindow is the minimum spacing between published samples (~60 Hz).
const CoalesceWindow = 16 * time.Millisecond

// State is the pointer as seen by the simulation. X and Y are surface-local.
// When Active is false the coordinates are stale and must not be used.
type State struct {
	X, Y   float64
	Active bool
}

// Idle is the state before the first move.
func Idle() State { return State{X: -1000, Y: -1000} }

// Tracker coalesces move events arriving faster than the window into the
// most recent sample. It is not safe for concurrent use; hosts feed it from
// the goroutine that runs frames.
type Tracker struct {
	window     time.Duration
	published  State
	pending    State
	hasPending bool
	last       time.Time
}

func NewTracker() *Tracker {
	return &Tracker{window: CoalesceWindow, published: Idle()}
}

// Move records a pointer position observed at now.
func (t *Tracker) Move(x, y float64, now time.Time) {
	s := State{X: x, Y: y, Active: true}
	if t.last.IsZero() || now.Sub(t.last) >= t.window {
		t.publish(s, now)
		return
	}
	t.pending, t.hasPending = s, true
}

// Leave deactivates the pointer immediately and drops any pending sample.
// The next move publishes at once, even inside the window.
func (t *Tracker) Leave() {
	t.published.Active = false
	t.hasPending = false
	t.last = time.Time{}
}

// Poll returns the state for a frame at now, promoting a coalesced sample
// once its window has elapsed.
func (t *Tracker) Poll(now time.Time) State {
	if t.hasPending && now.Sub(t.last) >= t.window {
		t.publish(t.pending, now)
	}
	return t.published
}

func (t *Tracker) publish(s State, now time.Time) {
	t.published, t.hasPending, t.last = s, false, now
}
