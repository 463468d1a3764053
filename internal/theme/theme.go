// Package theme holds the light/dark palettes. Themes change colours and
// opacities only, never physics.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/neural-field-go/internal/paint"
)

type Theme int

const (
	Light Theme = iota
	Dark
)

var ErrUnknown = errors.New("unknown theme")

// Parse accepts "light" or "dark", case-insensitively.
func Parse(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknown, s)
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Palette is everything the renderer and hosts need from a theme.
type Palette struct {
	Fill          paint.Color // particle and link colour, alpha unused
	Glow          paint.Color // halo colour of excited particles
	ParticleAlpha float64
	LineScale     float64 // extra multiplier on link opacity
	Background    paint.Color
	LayerOpacity  float64 // opacity of the whole particle layer over Background
}

// Palette returns the built-in palette for t.
func (t Theme) Palette() Palette {
	if t == Dark {
		return Palette{
			Fill:          mustHex("#93c5fd", 1),
			Glow:          mustHex("#93c5fd", 0.8),
			ParticleAlpha: 0.5,
			LineScale:     0.6,
			Background:    mustHex("#0a0a0a", 1),
			LayerOpacity:  0.5,
		}
	}
	return Palette{
		Fill:          mustHex("#2563eb", 1),
		Glow:          mustHex("#3b82f6", 0.8),
		ParticleAlpha: 0.8,
		LineScale:     1,
		Background:    mustHex("#f8fafc", 1),
		LayerOpacity:  0.6,
	}
}

// WithFill overrides the fill colour from a "#rrggbb" string. An empty
// string leaves the palette unchanged.
func (p Palette) WithFill(hex string) (Palette, error) {
	if hex == "" {
		return p, nil
	}
	c, err := Hex(hex, 1)
	if err != nil {
		return p, err
	}
	p.Fill = c
	return p, nil
}

// Hex parses "#rrggbb" into a paint colour with alpha a.
func Hex(s string, a float64) (paint.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return paint.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return paint.Color{R: r, G: g, B: b, A: a}, nil
}

// Colorful converts a paint colour to its colorful representation, dropping
// alpha.
func Colorful(c paint.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func mustHex(s string, a float64) paint.Color {
	c, err := Hex(s, a)
	if err != nil {
		panic(err)
	}
	return c
}
