package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/neural-field-go/internal/paint"
)

// Painter draws onto an offscreen ebiten image. Glow is emulated with
// translucent rings since ebiten has no shadow blur.
type Painter struct {
	img  *ebiten.Image
	glow paint.Color
	blur float64
}

func (p *Painter) Size() (int, int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

func (p *Painter) Clear() { p.img.Clear() }

func (p *Painter) SetGlow(blur float64, c paint.Color) {
	p.blur, p.glow = blur, c
}

func (p *Painter) FillCircle(x, y, r float64, c paint.Color) {
	for _, ring := range paint.GlowRings(r, p.blur, p.glow) {
		p.disc(x, y, ring.R, ring.C)
	}
	p.disc(x, y, r, c)
}

func (p *Painter) StrokeLine(x0, y0, x1, y1, width float64, c paint.Color) {
	if c.Alpha() == 0 {
		return
	}
	vector.StrokeLine(p.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

func (p *Painter) disc(x, y, r float64, c paint.Color) {
	if r <= 0 || c.Alpha() == 0 {
		return
	}
	vector.DrawFilledCircle(p.img, float32(x), float32(y), float32(r), c.NRGBA(), true)
}
