package densify

import (
	"math"
	"slices"

	"github.com/euclid-tools/densify/pkg/errors"
	"github.com/euclid-tools/densify/pkg/geom"
)

// Kind tags how a segment was densified.
type Kind int

const (
	// KindByX advances along x and interpolates y.
	KindByX Kind = iota
	// KindByY advances along y and interpolates x.
	KindByY
	// KindDegenerate marks a zero-length segment.
	KindDegenerate
)

func (k Kind) String() string {
	switch k {
	case KindByX:
		return "by-x"
	case KindByY:
		return "by-y"
	case KindDegenerate:
		return "degenerate"
	}
	return "unknown"
}

// Result is the densified form of one segment.
type Result struct {
	// Points runs from the segment's A to its B and has at least two elements.
	Points []geom.Point

	// Kind records which branch produced Points.
	Kind Kind
}

// Segments returns the consecutive point pairs of r as two-point segments.
func (r Result) Segments() geom.Graph {
	out := make(geom.Graph, 0, len(r.Points)-1)
	for i := 0; i+1 < len(r.Points); i++ {
		out = append(out, geom.Seg(r.Points[i], r.Points[i+1]))
	}
	return out
}

// endTolerance is the relative distance from the far endpoint inside which a
// generated point is considered to coincide with it.
const endTolerance = 1e-9

// Segment resamples s at the given step.
//
// The returned points start at s.A and end at s.B. Interior points are spaced
// step apart along the segment, starting from the endpoint with the smaller
// x (B when the x coordinates are equal), so the sub-segment touching the
// other endpoint may be short. The dominant axis only decides which
// coordinate is advanced and which is interpolated.
//
// The policy gives the number of interior points, but a point that would
// coincide with the far endpoint is omitted, so a segment whose length is an
// exact multiple of step yields one point fewer than the policy count and
// never a zero-length sub-segment. A zero-length segment yields [s.A, s.A]
// with KindDegenerate.
func Segment(s geom.Segment, step float64, opts Options) (Result, error) {
	if err := errors.ValidateStep(step); err != nil {
		return Result{}, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return Result{}, err
	}
	return segment(s, step, opts)
}

// segment expects a validated step and defaulted options.
func segment(s geom.Segment, step float64, opts Options) (Result, error) {
	if err := errors.ValidateCoordinates("segment", s.A.X, s.A.Y, s.B.X, s.B.Y); err != nil {
		return Result{}, err
	}
	if s.IsDegenerate() {
		return Result{Points: []geom.Point{s.A, s.A}, Kind: KindDegenerate}, nil
	}

	d := s.B.Sub(s.A)
	kind := KindByX
	if math.Abs(d.Y) > math.Abs(d.X) {
		kind = KindByY
	}

	// Steps always start from the smaller-x endpoint; an x tie starts at B.
	first, second := s.A, s.B
	swapped := false
	if !(second.X > first.X) {
		first, second = second, first
		swapped = true
	}

	length := first.Distance(second)
	angle := second.Sub(first).Angle()

	n := opts.Policy.count(length, step)
	if n > float64(opts.MaxPoints) {
		return Result{}, errors.New(errors.ErrCodeTooManyPoints,
			"segment of length %g needs %.0f points at step %g (max %d)", length, n, step, opts.MaxPoints)
	}
	k := int(n)

	cos, sin := math.Cos(angle), math.Sin(angle)
	limit := length - endTolerance*math.Max(1, length)

	pts := make([]geom.Point, 0, k+2)
	pts = append(pts, first)
	for i := 1; i <= k; i++ {
		along := float64(i) * step
		if along >= limit {
			break
		}
		var p geom.Point
		if kind == KindByX {
			x := first.X + along*cos
			p = geom.Pt(x, interp(x, first.X, second.X, first.Y, second.Y))
		} else {
			y := first.Y + along*sin
			p = geom.Pt(interp(y, first.Y, second.Y, first.X, second.X), y)
		}
		pts = append(pts, p)
	}
	pts = append(pts, second)

	if swapped {
		slices.Reverse(pts)
	}
	return Result{Points: pts, Kind: kind}, nil
}

// interp maps v from [v0, v1] onto [w0, w1], clamping outside the range.
// v0 and v1 may come in either order but must differ.
func interp(v, v0, v1, w0, w1 float64) float64 {
	if v0 > v1 {
		v0, v1, w0, w1 = v1, v0, w1, w0
	}
	if v <= v0 {
		return w0
	}
	if v >= v1 {
		return w1
	}
	return w0 + (v-v0)*(w1-w0)/(v1-v0)
}
