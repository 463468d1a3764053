// Package termhost runs the field in a terminal. Frames are rasterised in
// software and shown with half-block cells: each cell carries two vertically
// stacked samples as foreground and background colours.
package termhost

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/pointer"
	"github.com/olivierh59500/neural-field-go/internal/sim"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

// Pixels per terminal cell. A cell shows two cellW×cellW samples.
const (
	cellW = 6
	cellH = 2 * cellW

	upperHalf = '▀'
)

type Host struct {
	sim.Hub
	sim.FrameQueue

	Autopilot *pointer.Autopilot // drives the pointer while focus is elsewhere

	screen tcell.Screen
	raster *paint.Raster
	pal    theme.Palette
	bg     colorful.Color
	tick   time.Duration
	focus  bool
}

// New initialises the terminal. Callers must Close it.
func New(pal theme.Palette, fps int) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newHost(screen, pal, fps)
}

func newHost(screen tcell.Screen, pal theme.Palette, fps int) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	if fps <= 0 {
		fps = 60
	}
	cols, rows := screen.Size()
	return &Host{
		screen: screen,
		raster: paint.NewRaster(cols*cellW, rows*cellH),
		pal:    pal,
		bg:     theme.Colorful(pal.Background),
		tick:   time.Second / time.Duration(fps),
		focus:  true,
	}, nil
}

// Sim returns the host in the form a controller attaches to.
func (h *Host) Sim() sim.Host {
	return sim.Host{Surface: h, Scheduler: h, Input: h}
}

func (h *Host) Size() (int, int) { return h.raster.Size() }

func (h *Host) Painter() (paint.Painter, error) { return h.raster, nil }

// Close restores the terminal.
func (h *Host) Close() { h.screen.Fini() }

// Run owns the loop until Esc, q or Ctrl-C. Terminal events arrive from a
// reader goroutine over a channel so that frames and event handling share
// this goroutine.
func (h *Host) Run() {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go h.pollEvents(events, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !h.handle(ev) {
				return
			}
		case <-ticker.C:
			if h.Autopilot != nil && !h.focus {
				w, hh := h.raster.Size()
				h.EmitMove(h.Autopilot.Next(float64(w), float64(hh)))
			}
			if h.FrameQueue.Run() {
				h.present()
			}
		}
	}
}

// pollEvents forwards terminal events until the screen is finalised or done
// is closed, whichever comes first.
func (h *Host) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.raster.Resize(cols*cellW, rows*cellH)
		h.screen.Sync()
		h.EmitResize(cols*cellW, rows*cellH)
	case *tcell.EventMouse:
		x, y := cellCenter(ev.Position())
		h.focus = true
		h.EmitMove(x, y)
	case *tcell.EventFocus:
		h.focus = ev.Focused
		if !ev.Focused {
			h.EmitLeave()
		}
	}
	return true
}

// present downsamples the raster into half-block cells.
func (h *Host) present() {
	img := h.raster.Image()
	b := img.Bounds()
	cols, rows := b.Dx()/cellW, b.Dy()/cellH
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := h.sample(cx*cellW, cy*cellH)
			bottom := h.sample(cx*cellW, cy*cellH+cellW)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			h.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	h.screen.Show()
}

// sample averages a cellW×cellW block and composites it over the background.
func (h *Host) sample(x0, y0 int) tcell.Color {
	return tcellColor(blendBlock(h.raster, x0, y0, cellW, h.bg, h.pal.LayerOpacity))
}

func blendBlock(r *paint.Raster, x0, y0, n int, bg colorful.Color, opacity float64) colorful.Color {
	img := r.Image()
	var sr, sg, sb, sa float64
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			sr += float64(px[0])
			sg += float64(px[1])
			sb += float64(px[2])
			sa += float64(px[3])
		}
	}
	if sa == 0 {
		return bg
	}
	// Pixels are premultiplied: dividing by summed alpha recovers the mean
	// straight colour of the covered area.
	fg := colorful.Color{R: sr / sa, G: sg / sa, B: sb / sa}
	coverage := sa / (255 * float64(n*n))
	return bg.BlendRgb(fg, coverage*opacity)
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func cellCenter(col, row int) (float64, float64) {
	return float64(col*cellW) + cellW/2, float64(row*cellH) + cellH/2
}
