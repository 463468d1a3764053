package field

import (
	"math"
	"math/rand"

	"github.com/olivierh59500/neural-field-go/internal/pointer"
)

// Population constants
const (
	AreaPerParticle = 10000.0
	MaxBaseCount    = 150
	CenterCount     = 30
	centerMargin    = 0.2 // centre particles stay in the middle 60% per axis
	centerSpan      = 1 - 2*centerMargin
)

// FrameStats describes the last stepped and rendered frame.
type FrameStats struct {
	Excited int // particles above the excitation threshold this frame
	Links   int // links drawn in the last Render
}

// Field owns the particle population and the surface bounds.
type Field struct {
	Particles []*Particle
	W, H      float64
	Stats     FrameStats

	grid *grid
}

// PopulationSize is the particle count for a w×h surface.
func PopulationSize(w, h float64) int {
	base := int(math.Floor(w * h / AreaPerParticle))
	if base > MaxBaseCount {
		base = MaxBaseCount
	}
	if base < 0 {
		base = 0
	}
	return base + CenterCount
}

// New seeds a field for a w×h surface.
func New(rng *rand.Rand, w, h float64) *Field {
	f := &Field{W: w, H: h}
	f.Reseed(rng)
	return f
}

// Reseed discards the population and draws a new one for the current bounds:
// the base particles over the whole surface, then CenterCount particles
// biased to the centre.
func (f *Field) Reseed(rng *rand.Rand) {
	n := PopulationSize(f.W, f.H)
	base := n - CenterCount

	f.Particles = make([]*Particle, 0, n)
	for i := 0; i < base; i++ {
		f.Particles = append(f.Particles, NewParticle(rng, f.W, f.H))
	}
	for i := 0; i < CenterCount; i++ {
		p := NewParticle(rng, f.W, f.H)
		p.Pos.X = f.W*centerMargin + rng.Float64()*f.W*centerSpan
		p.Pos.Y = f.H*centerMargin + rng.Float64()*f.H*centerSpan
		f.Particles = append(f.Particles, p)
	}
}

// Resize updates the bounds used by subsequent frames. The population is
// left as is.
func (f *Field) Resize(w, h float64) {
	f.W, f.H = w, h
}

// SetPartition switches chain transfers between the full pairwise scan and
// the uniform grid. Both produce the same result.
func (f *Field) SetPartition(on bool) {
	if on {
		f.grid = newGrid(ChainRadius)
		return
	}
	f.grid = nil
}

// Step advances one frame: depth sort, pointer and chain interaction, then
// integration.
func (f *Field) Step(ptr pointer.State) {
	f.Stats.Excited = 0
	sortByDepth(f.Particles)
	f.interact(ptr)
	for _, p := range f.Particles {
		p.Integrate(f.W, f.H)
	}
}
