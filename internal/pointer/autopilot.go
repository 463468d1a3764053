package pointer

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Autopilot noise parameters
const (
	autopilotAlpha  = 2.0
	autopilotBeta   = 2.0
	autopilotOctave = 3
	autopilotStep   = 0.01 // noise-space advance per sample
	autopilotSpread = 1.6  // stretch noise (mostly within ±0.5) to the surface
	autopilotYShift = 71.3 // decorrelates the y channel from x
)

// Autopilot produces a smooth wandering pointer path from Perlin noise, for
// demos and headless runs without real input.
type Autopilot struct {
	noise *perlin.Perlin
	t     float64
}

func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{noise: perlin.NewPerlin(autopilotAlpha, autopilotBeta, autopilotOctave, seed)}
}

// Next advances the path and returns a position inside a w×h surface.
func (a *Autopilot) Next(w, h float64) (x, y float64) {
	a.t += autopilotStep
	nx := a.noise.Noise1D(a.t)
	ny := a.noise.Noise1D(a.t + autopilotYShift)
	return spread(nx, w), spread(ny, h)
}

func spread(n, size float64) float64 {
	v := (0.5 + n*autopilotSpread) * size
	return math.Max(0, math.Min(size, v))
}
