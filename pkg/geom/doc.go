// Package geom provides the planar value types shared by the densifier,
// the JSON codec, and the renderers.
//
// # Types
//
//   - [Point]: a position in the plane
//   - [Vec2]: a displacement between two points
//   - [Segment]: a straight edge between two endpoints
//   - [Graph]: an ordered list of segments with no adjacency structure
//
// All types are plain values. Methods never mutate their receiver, so
// graphs can be shared between goroutines as long as nobody writes to the
// backing slice.
//
// # Interpolation
//
// [Segment.Interpolate] and [Segment.At] return points along a segment by
// normalized parameter or absolute distance. Negative arguments are
// measured from the far endpoint and results are clamped to the segment:
//
//	s := geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0))
//	s.Interpolate(0.25) // (2.5, 0)
//	s.At(-2)            // (8, 0)
//	s.At(25)            // (10, 0)
package geom
