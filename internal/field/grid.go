package field

import "math"

// cell is a grid bin coordinate.
type cell struct{ x, y int }

// grid bins particle indices by position so chain transfers only scan the
// 3×3 block of cells around a source. Cell size equals ChainRadius, so every
// particle within range is in that block. Each target still receives exactly
// one transfer per source, so results match the full scan.
type grid struct {
	size float64
	bins map[cell][]int
}

func newGrid(size float64) *grid {
	return &grid{size: size, bins: make(map[cell][]int)}
}

func (g *grid) cellOf(p *Particle) cell {
	return cell{
		x: int(math.Floor(p.Pos.X / g.size)),
		y: int(math.Floor(p.Pos.Y / g.size)),
	}
}

// build assigns particles to bins, reusing the bin slices between frames.
func (g *grid) build(ps []*Particle) {
	for k, bin := range g.bins {
		g.bins[k] = bin[:0]
	}
	for i, p := range ps {
		c := g.cellOf(p)
		g.bins[c] = append(g.bins[c], i)
	}
}

// near calls fn for every particle index in the cells around p.
func (g *grid) near(p *Particle, fn func(j int)) {
	c := g.cellOf(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, j := range g.bins[cell{c.x + dx, c.y + dy}] {
				fn(j)
			}
		}
	}
}
