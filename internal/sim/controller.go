// Package sim drives the particle field: it owns the population, the frame
// schedule, resize and pointer wiring, and teardown.
package sim

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/olivierh59500/neural-field-go/internal/field"
	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/pointer"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

// State is the controller lifecycle stage.
type State int

const (
	Uninitialized State = iota
	Running
	Disposed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Disposed:
		return "disposed"
	}
	return "uninitialized"
}

var (
	ErrDisposed = errors.New("sim: controller disposed")
	ErrAttached = errors.New("sim: controller already attached")
)

// Config parameterises a Controller. Zero values are usable: light palette,
// time-seeded RNG, wall clock, full-scan neighbour queries.
type Config struct {
	Palette           theme.Palette
	RecomputeOnResize bool // reseed the population when the surface resizes
	Partition         bool // grid neighbour queries for chain transfers
	Rand              *rand.Rand
	Now               func() time.Time
	LogEvery          int // log stats every N frames, 0 disables
}

// Stats is a snapshot of the controller for HUDs and logs.
type Stats struct {
	State     State
	Frames    uint64
	Particles int
	Excited   int
	Links     int
	Width     int
	Height    int
}

// Controller runs the simulation on a host. All methods and host callbacks
// must be called from the same goroutine.
type Controller struct {
	cfg     Config
	state   State
	host    Host
	painter paint.Painter
	field   *field.Field
	tracker *pointer.Tracker
	frames  uint64

	frameID  FrameID
	hasFrame bool
	removers []func()
}

func New(cfg Config) *Controller {
	if cfg.Palette == (theme.Palette{}) {
		cfg.Palette = theme.Light.Palette()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{cfg: cfg, tracker: pointer.NewTracker()}
}

// Attach seeds the population on h's surface, subscribes to its input and
// schedules the first frame. Without a surface it does nothing. A surface
// that cannot provide a painter leaves the controller inactive and returns
// the error for logging; it is not meant to be fatal to the host.
func (c *Controller) Attach(h Host) error {
	switch c.state {
	case Disposed:
		return ErrDisposed
	case Running:
		return ErrAttached
	}
	if h.Surface == nil || h.Scheduler == nil {
		log.Printf("sim: no surface, not starting")
		return nil
	}

	p, err := h.Surface.Painter()
	if err != nil {
		log.Printf("sim: simulation inactive: %v", err)
		return fmt.Errorf("acquire painter: %w", err)
	}

	w, hh := h.Surface.Size()
	c.host, c.painter = h, p
	c.field = field.New(c.cfg.Rand, float64(w), float64(hh))
	c.field.SetPartition(c.cfg.Partition)

	if h.Input != nil {
		c.removers = append(c.removers,
			h.Input.OnResize(c.resize),
			h.Input.OnPointerMove(c.move),
			h.Input.OnPointerLeave(c.leave),
		)
	}

	c.state = Running
	log.Printf("sim: attached %dx%d, %d particles", w, hh, len(c.field.Particles))
	c.schedule()
	return nil
}

// Detach cancels the pending frame and removes every listener. It is safe to
// call more than once.
func (c *Controller) Detach() {
	if c.state == Disposed {
		return
	}
	prev := c.state
	c.state = Disposed

	if c.hasFrame {
		c.host.Scheduler.CancelFrame(c.frameID)
		c.hasFrame = false
	}
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil

	if prev == Running {
		log.Printf("sim: detached after %d frames", c.frames)
	}
}

func (c *Controller) State() State { return c.state }

// Field exposes the simulated population; nil before Attach succeeds.
func (c *Controller) Field() *field.Field { return c.field }

func (c *Controller) Stats() Stats {
	s := Stats{State: c.state, Frames: c.frames}
	if c.field != nil {
		s.Particles = len(c.field.Particles)
		s.Excited = c.field.Stats.Excited
		s.Links = c.field.Stats.Links
		s.Width, s.Height = int(c.field.W), int(c.field.H)
	}
	return s
}

func (c *Controller) schedule() {
	c.frameID = c.host.Scheduler.RequestFrame(c.frame)
	c.hasFrame = true
}

func (c *Controller) frame() {
	c.hasFrame = false
	if c.state != Running {
		return
	}

	// Pick up size changes the host did not report.
	if w, h := c.host.Surface.Size(); float64(w) != c.field.W || float64(h) != c.field.H {
		c.resize(w, h)
	}

	c.field.Step(c.tracker.Poll(c.cfg.Now()))
	c.field.Render(c.painter, c.cfg.Palette)
	c.frames++

	if c.cfg.LogEvery > 0 && c.frames%uint64(c.cfg.LogEvery) == 0 {
		s := c.Stats()
		log.Printf("sim: frame %d, %d particles, %d excited, %d links", s.Frames, s.Particles, s.Excited, s.Links)
	}
	c.schedule()
}

func (c *Controller) resize(w, h int) {
	if c.state != Running {
		return
	}
	c.field.Resize(float64(w), float64(h))
	if c.cfg.RecomputeOnResize {
		c.field.Reseed(c.cfg.Rand)
		log.Printf("sim: resized to %dx%d, reseeded %d particles", w, h, len(c.field.Particles))
	}
}

func (c *Controller) move(x, y float64) {
	if c.state != Running {
		return
	}
	c.tracker.Move(x, y, c.cfg.Now())
}

func (c *Controller) leave() {
	if c.state != Running {
		return
	}
	c.tracker.Leave()
}
