package geom

import "math"

// Graph is an ordered list of segments. Segments may share endpoints, but no
// adjacency is modeled.
type Graph []Segment

// Length returns the summed length of all segments.
func (g Graph) Length() float64 {
	var total float64
	for _, s := range g {
		total += s.Length()
	}
	return total
}

// Points returns the number of endpoints in g, counting shared ones twice.
func (g Graph) Points() int {
	return 2 * len(g)
}

// Clone returns a copy of g that shares no backing array with it.
func (g Graph) Clone() Graph {
	if g == nil {
		return nil
	}
	out := make(Graph, len(g))
	copy(out, g)
	return out
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Point
	Max Point
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds returns the bounding box of every endpoint in g. The second return
// value is false for an empty graph.
func (g Graph) Bounds() (Rect, bool) {
	if len(g) == 0 {
		return Rect{}, false
	}
	r := Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, s := range g {
		for _, p := range [2]Point{s.A, s.B} {
			r.Min.X = math.Min(r.Min.X, p.X)
			r.Min.Y = math.Min(r.Min.Y, p.Y)
			r.Max.X = math.Max(r.Max.X, p.X)
			r.Max.Y = math.Max(r.Max.Y, p.Y)
		}
	}
	return r, true
}
