package field

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/neural-field-go/internal/pointer"
)

// Interaction constants
const (
	RepelRadius   = 150.0
	RepelStrength = 2.0
	RepelImpulse  = 0.1
	RepelEnergy   = 5.0 // energy per unit of repel force

	ExcitedThreshold = 0.1
	ChainRadius      = 100.0
	ChainTransfer    = 0.3
	ChainImpulse     = 0.05
	ChainRetention   = 0.7
	EnergyDecay      = 0.92

	// Distances below this have no usable direction.
	minDistance = 1e-6
)

// Repel pushes p away from an active pointer and excites it. Energy is only
// ever raised here.
func Repel(p *Particle, ptr pointer.State) {
	if !ptr.Active {
		return
	}
	delta := r2.Sub(p.Planar(), r2.Vec{X: ptr.X, Y: ptr.Y})
	d := r2.Norm(delta)
	if d >= RepelRadius {
		return
	}

	force := (1 - d/RepelRadius) * RepelStrength
	dir := unit(delta, d)
	p.Vel.X += dir.X * force * RepelImpulse
	p.Vel.Y += dir.Y * force * RepelImpulse
	p.Energy = max(p.Energy, force*RepelEnergy)
}

// interact runs the repel, chain and decay rules over the population in its
// current order. Updates are in place: a particle later in the pass sees
// energy raised by earlier ones.
func (f *Field) interact(ptr pointer.State) {
	if f.grid != nil {
		f.grid.build(f.Particles)
	}
	for i, p := range f.Particles {
		Repel(p, ptr)
		if p.Energy > ExcitedThreshold {
			f.Stats.Excited++
			f.diffuse(i)
		}
		p.Energy *= EnergyDecay
	}
}

// diffuse spreads energy from particle i to every other particle within
// ChainRadius.
func (f *Field) diffuse(i int) {
	src := f.Particles[i]
	visit := func(j int) {
		if j != i {
			Chain(src, f.Particles[j])
		}
	}
	if f.grid != nil {
		f.grid.near(src, visit)
		return
	}
	for j := range f.Particles {
		visit(j)
	}
}

// Chain applies one source→target energy transfer. The target is nudged
// along the direction from itself to the source.
func Chain(src, dst *Particle) {
	delta := r2.Sub(src.Planar(), dst.Planar())
	d := r2.Norm(delta)
	if d >= ChainRadius {
		return
	}

	transfer := src.Energy * ChainTransfer * (1 - d/ChainRadius)
	dir := unit(delta, d)
	dst.Vel.X += dir.X * transfer * ChainImpulse
	dst.Vel.Y += dir.Y * transfer * ChainImpulse
	dst.Energy = max(dst.Energy, transfer*ChainRetention)
}

// unit returns delta/d, or +X when the points coincide.
func unit(delta r2.Vec, d float64) r2.Vec {
	if d < minDistance {
		return r2.Vec{X: 1}
	}
	return r2.Vec{X: delta.X / d, Y: delta.Y / d}
}
