package paint

// OpKind identifies a recorded paint call.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded paint call. Glow is the blur active when it was issued.
type Op struct {
	Kind           OpKind
	X, Y, X1, Y1   float64
	R, Width, Glow float64
	C              Color
}

// Recorder is a Painter that keeps every call for inspection.
type Recorder struct {
	W, H int
	Ops  []Op

	blur float64
}

func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, rad float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: x, Y: y, R: rad, C: c, Glow: r.blur})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, C: c, Glow: r.blur})
}

func (r *Recorder) SetGlow(blur float64, _ Color) { r.blur = blur }

// GlowActive reports whether a glow is still set.
func (r *Recorder) GlowActive() bool { return r.blur != 0 }

// Count returns the number of recorded ops of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
