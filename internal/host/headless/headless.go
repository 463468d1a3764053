// Package headless is an offscreen host: a software raster surface with a
// manually stepped frame queue. It drives benchmarks, CI runs and PNG dumps.
package headless

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/sim"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

// DefaultStep is the simulated time between two ticks.
const DefaultStep = time.Second / 60

// Host keeps its own clock that moves only when a frame ticks, so runs with
// the same seed and pointer script do not depend on how fast they execute.
type Host struct {
	sim.Hub
	sim.FrameQueue

	raster *paint.Raster
	clock  time.Time
	step   time.Duration
}

func New(w, h int) *Host {
	return &Host{
		raster: paint.NewRaster(w, h),
		clock:  time.Unix(0, 0).UTC(),
		step:   DefaultStep,
	}
}

// SetFrameRate sets how far the clock advances per tick. Non-positive rates
// keep the current step.
func (h *Host) SetFrameRate(fps int) {
	if fps > 0 {
		h.step = time.Second / time.Duration(fps)
	}
}

// Now is the host clock, suitable for sim.Config.Now.
func (h *Host) Now() time.Time { return h.clock }

// Sim returns the host in the form a controller attaches to.
func (h *Host) Sim() sim.Host {
	return sim.Host{Surface: h, Scheduler: h, Input: h}
}

func (h *Host) Size() (int, int) { return h.raster.Size() }

func (h *Host) Painter() (paint.Painter, error) { return h.raster, nil }

// Resize reallocates the surface and notifies listeners.
func (h *Host) Resize(w, hh int) {
	h.raster.Resize(w, hh)
	h.EmitResize(w, hh)
}

// Tick runs the pending frame, reporting whether one ran, then advances the
// clock by one step.
func (h *Host) Tick() bool {
	ran := h.Run()
	h.clock = h.clock.Add(h.step)
	return ran
}

// Composite flattens the particle layer over the palette background at the
// layer opacity, the way a page shows it.
func (h *Host) Composite(pal theme.Palette) *image.RGBA {
	layer := h.raster.Image()
	b := layer.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(pal.Background.NRGBA()), image.Point{}, draw.Src)
	mask := image.NewUniform(color.Alpha{A: uint8(pal.LayerOpacity*255 + 0.5)})
	draw.DrawMask(out, b, layer, b.Min, mask, image.Point{}, draw.Over)
	return out
}

// SavePNG writes the composited frame to path, creating parent directories.
func (h *Host) SavePNG(path string, pal theme.Palette) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, h.Composite(pal)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
