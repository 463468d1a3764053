// Package field is the particle simulation: depth-layered points that drift,
// repel from the pointer, pass a chain-reaction energy pulse to neighbours
// and are drawn with proximity links.
package field

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

// Depth and motion constants
const (
	MinDepth   = 100.0
	MaxDepth   = 600.0
	DepthRange = MaxDepth - MinDepth
	FocalDepth = 300.0 // depth at which radius == base radius
	Damping    = 0.98

	EnergyRadiusGain = 0.2
	EnergyAlphaGain  = 0.5
	GlowBlur         = 15.0 // blur px per unit of energy

	seedPlanarSpeed = 0.5
	seedDepthSpeed  = 0.2
	minBaseRadius   = 1.0
	baseRadiusRange = 2.0
)

// Particle is a single point. Pos.Z is depth: larger is farther away.
type Particle struct {
	Pos        r3.Vec
	Vel        r3.Vec
	BaseRadius float64
	Radius     float64
	Energy     float64
}

// NewParticle draws a particle uniformly over a w×h surface and the full
// depth range.
func NewParticle(rng *rand.Rand, w, h float64) *Particle {
	p := &Particle{
		Pos: r3.Vec{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
			Z: rng.Float64()*DepthRange + MinDepth,
		},
		Vel: r3.Vec{
			X: (rng.Float64() - 0.5) * seedPlanarSpeed,
			Y: (rng.Float64() - 0.5) * seedPlanarSpeed,
			Z: (rng.Float64() - 0.5) * seedDepthSpeed,
		},
		BaseRadius: rng.Float64()*baseRadiusRange + minBaseRadius,
	}
	p.Radius = p.BaseRadius
	return p
}

// Planar returns the on-surface position.
func (p *Particle) Planar() r2.Vec { return r2.Vec{X: p.Pos.X, Y: p.Pos.Y} }

// Integrate advances the particle one frame within a w×h surface. Positions
// are not clamped: a particle that crosses an edge reverses and may sit
// outside for a frame.
func (p *Particle) Integrate(w, h float64) {
	p.Pos = r3.Add(p.Pos, p.Vel)

	if p.Pos.X < 0 || p.Pos.X > w {
		p.Vel.X *= -1
	}
	if p.Pos.Y < 0 || p.Pos.Y > h {
		p.Vel.Y *= -1
	}
	if p.Pos.Z < MinDepth || p.Pos.Z > MaxDepth {
		p.Vel.Z *= -1
	}

	p.Vel = r3.Scale(Damping, p.Vel)

	scale := FocalDepth / p.Pos.Z
	p.Radius = p.BaseRadius * scale * (1 + p.Energy*EnergyRadiusGain)
}

// Draw paints the particle, with a halo when it is excited.
func (p *Particle) Draw(dst paint.Painter, pal theme.Palette) {
	alpha := pal.ParticleAlpha * DepthOpacity(p.Pos.Z) * (1 + p.Energy*EnergyAlphaGain)
	fill := pal.Fill.WithAlpha(alpha)
	dst.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, fill)

	if p.Energy > ExcitedThreshold {
		paint.WithGlow(dst, GlowBlur*p.Energy, pal.Glow, func() {
			dst.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, fill)
		})
	}
}

// DepthOpacity is 1 at the nearest depth and 0 at the farthest.
func DepthOpacity(z float64) float64 {
	return (MaxDepth - z) / DepthRange
}
