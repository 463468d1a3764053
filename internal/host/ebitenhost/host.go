// Package ebitenhost runs the field in a window. It implements ebiten.Game;
// the controller's frame callback runs from Update and paints an offscreen
// layer that Draw composites over the theme background.
package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/pointer"
	"github.com/olivierh59500/neural-field-go/internal/sim"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

type Host struct {
	sim.Hub
	sim.FrameQueue

	painter *Painter
	w, h    int
	layoutW int
	layoutH int
	pal     theme.Palette

	Paused    bool
	ShowHUD   bool
	Autopilot *pointer.Autopilot // drives the pointer while the cursor is away
	Stats     func() sim.Stats   // HUD source, optional

	inside       bool
	lastX, lastY int
}

func New(w, h int, pal theme.Palette) *Host {
	return &Host{
		painter: &Painter{img: ebiten.NewImage(w, h)},
		w:       w,
		h:       h,
		layoutW: w,
		layoutH: h,
		pal:     pal,
	}
}

// Sim returns the host in the form a controller attaches to.
func (g *Host) Sim() sim.Host {
	return sim.Host{Surface: g, Scheduler: g, Input: g}
}

func (g *Host) Size() (int, int) { return g.w, g.h }

func (g *Host) Painter() (paint.Painter, error) { return g.painter, nil }

// Update is called each tick by Ebitengine
func (g *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}

	g.applyLayout()
	g.pollPointer()

	if g.Paused {
		return nil
	}
	g.Run()
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Host) Draw(screen *ebiten.Image) {
	screen.Fill(g.pal.Background.NRGBA())

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.pal.LayerOpacity))
	screen.DrawImage(g.painter.img, op)

	if g.ShowHUD && g.Stats != nil {
		s := g.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"TPS %0.1f  FPS %0.1f\nparticles %d  excited %d  links %d\n%s%s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), s.Particles, s.Excited, s.Links, s.State, pausedSuffix(g.Paused),
		))
	}
}

// Layout returns the screen size
func (g *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Applied on the next Update so resize listeners run alongside frames.
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Host) applyLayout() {
	if g.layoutW == g.w && g.layoutH == g.h {
		return
	}
	if g.layoutW <= 0 || g.layoutH <= 0 {
		return
	}
	g.w, g.h = g.layoutW, g.layoutH
	old := g.painter.img
	g.painter.img = ebiten.NewImage(g.w, g.h)
	old.Deallocate()
	g.EmitResize(g.w, g.h)
}

// pollPointer turns cursor state into move/leave events.
func (g *Host) pollPointer() {
	mx, my := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < g.w && my < g.h

	switch {
	case inside && (!g.inside || mx != g.lastX || my != g.lastY):
		g.EmitMove(float64(mx), float64(my))
	case !inside && g.inside:
		g.EmitLeave()
	}
	g.inside, g.lastX, g.lastY = inside, mx, my

	if !inside && g.Autopilot != nil {
		x, y := g.Autopilot.Next(float64(g.w), float64(g.h))
		g.EmitMove(x, y)
	}
}

func pausedSuffix(paused bool) string {
	if paused {
		return " (paused)"
	}
	return ""
}

var _ ebiten.Game = (*Host)(nil)
