package paint

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Raster is a software Painter backed by an *image.RGBA. Shapes are
// rasterised with anti-aliasing into a scratch rasterizer sized to the shape's
// clipped bounding box.
type Raster struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	glow Color
	blur float64
}

// NewRaster allocates a transparent w×h raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{z: vector.NewRasterizer(1, 1)}
	r.z.DrawOp = draw.Over
	r.Resize(w, h)
	return r
}

// Resize reallocates the backing image. Contents are discarded.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image exposes the backing image. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) SetGlow(blur float64, c Color) {
	r.blur, r.glow = blur, c
}

func (r *Raster) FillCircle(x, y, rad float64, c Color) {
	for _, ring := range GlowRings(rad, r.blur, r.glow) {
		r.disc(x, y, ring.R, ring.C)
	}
	r.disc(x, y, rad, c)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || c.Alpha() == 0 {
		return
	}
	// Offset the segment by half the width along its normal.
	nx, ny := -dy/l*width/2, dx/l*width/2
	box, ok := r.clip(
		math.Min(x0, x1)-width, math.Min(y0, y1)-width,
		math.Max(x0, x1)+width, math.Max(y0, y1)+width,
	)
	if !ok {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
	r.z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
	r.z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
	r.z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
	r.z.ClosePath()
	r.z.Draw(r.img, box, image.NewUniform(c.NRGBA()), image.Point{})
}

func (r *Raster) disc(x, y, rad float64, c Color) {
	if rad <= 0 || c.Alpha() == 0 {
		return
	}
	box, ok := r.clip(x-rad, y-rad, x+rad, y+rad)
	if !ok {
		return
	}
	cx, cy := float32(x-float64(box.Min.X)), float32(y-float64(box.Min.Y))
	rr, k := float32(rad), float32(rad*kappa)

	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(cx+rr, cy)
	r.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	r.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	r.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	r.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	r.z.ClosePath()
	r.z.Draw(r.img, box, image.NewUniform(c.NRGBA()), image.Point{})
}

// clip returns the integer box covering [x0,x1]×[y0,y1] intersected with the
// image bounds.
func (r *Raster) clip(x0, y0, x1, y1 float64) (image.Rectangle, bool) {
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	).Intersect(r.img.Bounds())
	return box, !box.Empty()
}
