package paint

import (
	"math"
	"testing"
)

func TestColorAlphaClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{6, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		got := Color{R: 1, G: 2, B: 3, A: tt.in}.NRGBA()
		if got.A != tt.want {
			t.Errorf("alpha %v: got %d, want %d", tt.in, got.A, tt.want)
		}
		if got.R != 1 || got.G != 2 || got.B != 3 {
			t.Errorf("alpha %v: rgb changed to %v", tt.in, got)
		}
	}
}

func TestWithGlowResets(t *testing.T) {
	rec := NewRecorder(10, 10)
	WithGlow(rec, 12, Color{A: 0.8}, func() {
		rec.FillCircle(1, 1, 1, Color{A: 1})
	})
	rec.FillCircle(2, 2, 1, Color{A: 1})

	if rec.GlowActive() {
		t.Fatal("glow still active after WithGlow")
	}
	if rec.Ops[0].Glow != 12 {
		t.Errorf("glowed fill recorded blur %v, want 12", rec.Ops[0].Glow)
	}
	if rec.Ops[1].Glow != 0 {
		t.Errorf("following fill recorded blur %v, want 0", rec.Ops[1].Glow)
	}
}

func TestWithGlowResetsOnPanic(t *testing.T) {
	rec := NewRecorder(10, 10)
	func() {
		defer func() { _ = recover() }()
		WithGlow(rec, 5, Color{A: 1}, func() { panic("boom") })
	}()
	if rec.GlowActive() {
		t.Fatal("glow leaked after panic")
	}
}

func TestGlowRings(t *testing.T) {
	if rings := GlowRings(2, 0, Color{A: 1}); rings != nil {
		t.Fatalf("zero blur produced %d rings", len(rings))
	}

	rings := GlowRings(2, 30, Color{A: 0.8})
	if len(rings) != maxGlowRings {
		t.Fatalf("got %d rings, want %d", len(rings), maxGlowRings)
	}
	if got := rings[0].R; math.Abs(got-32) > 1e-9 {
		t.Errorf("outer ring radius = %v, want 32", got)
	}
	for i := 1; i < len(rings); i++ {
		if rings[i].R >= rings[i-1].R {
			t.Errorf("ring %d radius %v not inside ring %d", i, rings[i].R, i-1)
		}
		if rings[i].C.A <= rings[i-1].C.A {
			t.Errorf("ring %d alpha %v not above outer ring", i, rings[i].C.A)
		}
	}
}

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillCircle(10, 10, 4, Color{R: 255, A: 1})

	img := r.Image()
	if c := img.RGBAAt(10, 10); c.R != 255 || c.A != 255 {
		t.Errorf("centre pixel = %v, want opaque red", c)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("corner pixel = %v, want transparent", c)
	}

	r.Clear()
	if c := img.RGBAAt(10, 10); c.A != 0 {
		t.Errorf("pixel after Clear = %v", c)
	}
}

func TestRasterClipsOffSurfaceShapes(t *testing.T) {
	r := NewRaster(16, 16)
	// Partially and fully outside; neither may panic.
	r.FillCircle(-2, 8, 5, Color{G: 255, A: 1})
	r.FillCircle(100, 100, 5, Color{G: 255, A: 1})
	r.StrokeLine(-20, 8, 40, 8, 1, Color{B: 255, A: 1})

	if c := r.Image().RGBAAt(1, 8); c.G == 0 {
		t.Errorf("clipped circle left no coverage at edge: %v", c)
	}
	if c := r.Image().RGBAAt(8, 8); c.B == 0 {
		t.Errorf("line through the middle missing: %v", c)
	}
}

func TestRasterGlowWidensCoverage(t *testing.T) {
	plain := NewRaster(40, 40)
	plain.FillCircle(20, 20, 2, Color{R: 255, A: 1})

	glowing := NewRaster(40, 40)
	WithGlow(glowing, 12, Color{R: 255, A: 0.8}, func() {
		glowing.FillCircle(20, 20, 2, Color{R: 255, A: 1})
	})

	if c := plain.Image().RGBAAt(28, 20); c.A != 0 {
		t.Errorf("plain disc reached x=28: %v", c)
	}
	if c := glowing.Image().RGBAAt(28, 20); c.A == 0 {
		t.Error("glow halo missing at x=28")
	}
}
