package sim

import (
	"log"

	"github.com/olivierh59500/neural-field-go/internal/paint"
)

// FrameID identifies a requested frame callback.
type FrameID uint64

// Surface is a resizable paint target.
type Surface interface {
	Size() (w, h int)
	Painter() (paint.Painter, error)
}

// Scheduler runs a callback before the next repaint.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Input delivers resize and pointer events. Each On* returns a function that
// removes the listener.
type Input interface {
	OnResize(fn func(w, h int)) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
	OnPointerLeave(fn func()) (remove func())
}

// Host bundles what a controller attaches to. A nil Surface means the host
// view does not exist yet.
type Host struct {
	Surface   Surface
	Scheduler Scheduler
	Input     Input
}

// FrameQueue is a Scheduler holding at most one pending callback. Hosts call
// Run from their paint-synchronised hook.
type FrameQueue struct {
	next    func()
	id      FrameID
	pending bool
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	if q.pending {
		log.Printf("sim: frame %d replaced before it ran", q.id)
	}
	q.id++
	q.next, q.pending = fn, true
	return q.id
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	if q.pending && q.id == id {
		q.next, q.pending = nil, false
	}
}

// Pending reports whether a callback is waiting.
func (q *FrameQueue) Pending() bool { return q.pending }

// Run takes the pending callback, if any, and calls it. It reports whether a
// callback ran.
func (q *FrameQueue) Run() bool {
	if !q.pending {
		return false
	}
	fn := q.next
	q.next, q.pending = nil, false
	fn()
	return true
}

type listener[F any] struct {
	id int
	fn F
}

// Hub is an Input implementation hosts embed and feed through Emit*.
type Hub struct {
	seq    int
	resize []listener[func(w, h int)]
	move   []listener[func(x, y float64)]
	leave  []listener[func()]
}

func (h *Hub) OnResize(fn func(w, h int)) func() {
	h.seq++
	id := h.seq
	h.resize = append(h.resize, listener[func(w, h int)]{id, fn})
	return func() { h.resize = without(h.resize, id) }
}

func (h *Hub) OnPointerMove(fn func(x, y float64)) func() {
	h.seq++
	id := h.seq
	h.move = append(h.move, listener[func(x, y float64)]{id, fn})
	return func() { h.move = without(h.move, id) }
}

func (h *Hub) OnPointerLeave(fn func()) func() {
	h.seq++
	id := h.seq
	h.leave = append(h.leave, listener[func()]{id, fn})
	return func() { h.leave = without(h.leave, id) }
}

func (h *Hub) EmitResize(w, hh int) {
	for _, l := range snapshot(h.resize) {
		l.fn(w, hh)
	}
}

func (h *Hub) EmitMove(x, y float64) {
	for _, l := range snapshot(h.move) {
		l.fn(x, y)
	}
}

func (h *Hub) EmitLeave() {
	for _, l := range snapshot(h.leave) {
		l.fn()
	}
}

// Listeners returns the number of registered listeners.
func (h *Hub) Listeners() int {
	return len(h.resize) + len(h.move) + len(h.leave)
}

func without[F any](ls []listener[F], id int) []listener[F] {
	out := ls[:0:0]
	for _, l := range ls {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}

// snapshot lets listeners remove themselves while being called.
func snapshot[F any](ls []listener[F]) []listener[F] {
	return append([]listener[F](nil), ls...)
}
