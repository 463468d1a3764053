package termhost

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/sim"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	h, err := newHost(tcell.NewSimulationScreen(""), theme.Dark.Palette(), 60)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)
	return h
}

func TestBlendBlockEmptyIsBackground(t *testing.T) {
	r := paint.NewRaster(12, 12)
	bg := colorful.Color{R: 0.1, G: 0.2, B: 0.3}
	if got := blendBlock(r, 0, 0, 6, bg, 0.5); got != bg {
		t.Errorf("blend = %v, want background", got)
	}
}

func TestBlendBlockFullCoverage(t *testing.T) {
	r := paint.NewRaster(12, 12)
	r.FillCircle(6, 6, 20, paint.Color{R: 255, A: 1})
	bg := colorful.Color{}

	got := blendBlock(r, 0, 0, 6, bg, 0.5)
	if d := got.R - 0.5; d > 1e-9 || d < -1e-9 || got.G != 0 || got.B != 0 {
		t.Errorf("blend = %+v, want half red", got)
	}
}

func TestCellCenter(t *testing.T) {
	x, y := cellCenter(2, 3)
	if x != 2*cellW+cellW/2 || y != 3*cellH+cellH/2 {
		t.Errorf("cellCenter = (%v, %v)", x, y)
	}
}

func TestHandleEvents(t *testing.T) {
	h := newTestHost(t)

	var moves, leaves int
	var lastX, lastY float64
	h.OnPointerMove(func(x, y float64) { moves++; lastX, lastY = x, y })
	h.OnPointerLeave(func() { leaves++ })
	resizedW := 0
	h.OnResize(func(w, _ int) { resizedW = w })

	h.handle(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone))
	if moves != 1 || lastX != 4*cellW+cellW/2 || lastY != 2*cellH+cellH/2 {
		t.Errorf("move = %d (%v, %v)", moves, lastX, lastY)
	}

	h.handle(tcell.NewEventFocus(false))
	if leaves != 1 || h.focus {
		t.Errorf("leaves = %d, focus = %v", leaves, h.focus)
	}

	h.handle(tcell.NewEventResize(30, 10))
	if resizedW != 30*cellW {
		t.Errorf("resize width = %d", resizedW)
	}
	if w, hh := h.Size(); w != 30*cellW || hh != 10*cellH {
		t.Errorf("raster = %dx%d", w, hh)
	}
}

func TestFramePresents(t *testing.T) {
	h := newTestHost(t)
	c := sim.New(sim.Config{Palette: theme.Dark.Palette(), Rand: rand.New(rand.NewSource(1))})
	if err := c.Attach(h.Sim()); err != nil {
		t.Fatal(err)
	}
	defer c.Detach()

	if !h.FrameQueue.Run() {
		t.Fatal("no frame scheduled")
	}
	h.present()

	r, _, _, _ := h.screen.GetContent(0, 0)
	if r != upperHalf {
		t.Errorf("cell rune = %q, want %q", r, upperHalf)
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	h := newTestHost(t)
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		t.Fatal(err)
	}

	// Nobody reads events, so the forwarder can only leave through done.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		h.pollEvents(events, done)
		close(exited)
	}()
	close(done)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("event forwarder still blocked after done was closed")
	}
	if _, ok := <-events; ok {
		t.Error("events channel not closed")
	}
}
