package paint

import "math"

// Glow emulation constants for painters without a native blur
const (
	maxGlowRings  = 6
	glowRingStep  = 3.0 // px of blur per ring
	glowRingAlpha = 0.35
)

// Ring is one translucent disc of an emulated glow halo.
type Ring struct {
	R float64
	C Color
}

// GlowRings approximates a shadow blur of the given radius around a disc of
// radius r. Rings are returned outermost first with alpha rising inwards.
func GlowRings(r, blur float64, c Color) []Ring {
	if blur <= 0 || c.Alpha() == 0 {
		return nil
	}
	n := int(math.Ceil(blur / glowRingStep))
	if n > maxGlowRings {
		n = maxGlowRings
	}
	rings := make([]Ring, 0, n)
	for k := n; k >= 1; k-- {
		falloff := 1 - float64(k)/float64(n+1)
		rings = append(rings, Ring{
			R: r + blur*float64(k)/float64(n),
			C: c.WithAlpha(c.Alpha() * glowRingAlpha * falloff),
		})
	}
	return rings
}
