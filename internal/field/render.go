package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/neural-field-go/internal/paint"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

// Link constants
const (
	LinkRadius   = 180.0
	LinkDepthGap = 150.0
	LinkOpacity  = 0.5
	LinkWidth    = 1.0
)

// sortByDepth orders particles farthest first. The sort is stable so equal
// depths keep their previous relative order.
func sortByDepth(ps []*Particle) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Pos.Z > ps[j].Pos.Z
	})
}

// LinkAlpha returns the link opacity between a and b before theme scaling.
// ok is false when the pair is too far apart on the surface or in depth.
func LinkAlpha(a, b *Particle) (alpha float64, ok bool) {
	d := r2.Norm(r2.Sub(a.Planar(), b.Planar()))
	if d >= LinkRadius || math.Abs(a.Pos.Z-b.Pos.Z) >= LinkDepthGap {
		return 0, false
	}
	avg := (a.Pos.Z + b.Pos.Z) / 2
	return (1 - d/LinkRadius) * LinkOpacity * DepthOpacity(avg), true
}

// Render clears dst and paints particles in population order, then the
// links over them.
func (f *Field) Render(dst paint.Painter, pal theme.Palette) {
	dst.Clear()

	for _, p := range f.Particles {
		p.Draw(dst, pal)
	}

	f.Stats.Links = 0
	for i, a := range f.Particles {
		for _, b := range f.Particles[i+1:] {
			alpha, ok := LinkAlpha(a, b)
			if !ok {
				continue
			}
			f.Stats.Links++
			dst.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, LinkWidth, pal.Fill.WithAlpha(alpha*pal.LineScale))
		}
	}
}
