// Package densify subdivides the straight segments of a planar graph so that
// no sub-segment is longer than a fixed step.
//
// # Overview
//
// Pathfinding, sampling, and rendering code often assumes that graph edges
// are short. Real inputs (surveyed floor plans, digitized road maps) arrive
// with edges of arbitrary length. This package resamples every edge at a
// fixed step and returns a flat list of short, collinear sub-segments:
//
//	Before: (0,0) ─────────────────────────── (10,0)
//	After:  (0,0) ── (3,0) ── (6,0) ── (9,0) ─ (10,0)   step = 3
//
// # Segments
//
// [Segment] resamples one edge. The result always starts and ends at the
// edge's original endpoints, in their original order, and every interior
// point lies on the edge. The final sub-segment may be shorter than the step;
// it is never padded and never has zero length.
//
// Each result carries a [Kind] describing how it was computed:
//
//   - [KindByX]: the edge is closer to horizontal; interior points advance
//     along x and y is interpolated
//   - [KindByY]: the edge is closer to vertical; interior points advance
//     along y and x is interpolated
//   - [KindDegenerate]: both endpoints coincide; the point is returned twice
//
// # Point Count
//
// The number of interior points is controlled by a [Policy]:
//
//   - [PolicyFloor] (default): floor(length / step)
//   - [PolicyTruncate]: floor(trunc(length) / step), which truncates the
//     length to an integer first and can yield one point fewer near integer
//     boundaries
//
// # Graphs
//
// [Graph] applies [Segment] to every edge and flattens the point sequences
// into two-point segments. Output order follows input order: everything
// derived from edge i precedes everything derived from edge i+1. Edges are
// not merged or deduplicated.
//
// Setting [Options.Workers] above one processes edges on a bounded pool of
// goroutines. Results are written into an indexed slice and flattened in
// input order, so the output is identical to the sequential path.
//
// # Errors
//
// A non-positive or non-finite step fails with INVALID_STEP. Non-finite
// coordinates fail with INVALID_SEGMENT. A step so small that an edge would
// need more than [Options.MaxPoints] interior points fails with
// TOO_MANY_POINTS. Graph errors name the index of the failing edge.
//
// # Performance
//
// Time and space are O(n·k) for n edges and k points per edge.
package densify
