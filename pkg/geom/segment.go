package geom

import (
	"fmt"
	"math"
)

// Segment is a straight edge between two endpoints. The order of A and B is
// significant for output ordering but the edge itself is undirected.
type Segment struct {
	A Point
	B Point
}

// Seg returns the segment from a to b.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

func (s Segment) String() string {
	return fmt.Sprintf("[%v %v]", s.A, s.B)
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Angle returns the direction of A→B in radians.
func (s Segment) Angle() float64 {
	return s.B.Sub(s.A).Angle()
}

// Reverse returns the segment from B to A.
func (s Segment) Reverse() Segment {
	return Segment{A: s.B, B: s.A}
}

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool {
	return s.A.Equal(s.B)
}

// IsFinite reports whether both endpoints have finite coordinates.
func (s Segment) IsFinite() bool {
	return s.A.IsFinite() && s.B.IsFinite()
}

// Interpolate returns the point at normalized parameter t along A→B.
// Negative t is measured back from B. The result is clamped to the segment.
func (s Segment) Interpolate(t float64) Point {
	if t < 0 {
		t = 1 + t
	}
	return s.A.Lerp(s.B, clamp01(t))
}

// At returns the point at distance d along A→B, with the same negative and
// clamping rules as [Segment.Interpolate]. A degenerate segment returns A.
func (s Segment) At(d float64) Point {
	l := s.Length()
	if l == 0 {
		return s.A
	}
	return s.Interpolate(d / l)
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through the segment. A degenerate segment measures to A.
func (s Segment) DistanceToLine(p Point) float64 {
	d := s.B.Sub(s.A)
	l := d.Hypot()
	if l == 0 {
		return p.Distance(s.A)
	}
	return math.Abs(d.Cross(p.Sub(s.A))) / l
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
