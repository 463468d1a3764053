// Package paint defines the immediate-mode drawing contract the particle
// field renders through, plus a software rasteriser and a recording painter.
package paint

import (
	"image/color"
	"math"
)

// Color is an 8-bit RGB triple with a floating point alpha. Alpha is kept
// unclamped until paint time so opacity formulas can be composed freely.
type Color struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Alpha returns the alpha clamped to [0, 1].
func (c Color) Alpha() float64 {
	switch {
	case c.A < 0 || math.IsNaN(c.A):
		return 0
	case c.A > 1:
		return 1
	}
	return c.A
}

// NRGBA converts to a non-premultiplied color with clamped alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.Alpha()*255 + 0.5)}
}

// Painter is a 2D paint target. Implementations hold a single glow state that
// applies to every FillCircle until SetGlow(0, ...) resets it.
type Painter interface {
	Size() (w, h int)
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	SetGlow(blur float64, c Color)
}

// WithGlow runs fn with glow enabled and always resets the glow afterwards,
// so it never leaks into later draws.
func WithGlow(p Painter, blur float64, c Color, fn func()) {
	p.SetGlow(blur, c)
	defer p.SetGlow(0, Color{})
	fn()
}
