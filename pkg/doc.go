// Package pkg provides the libraries behind the densify tool.
//
// # Overview
//
// Densify resamples the straight segments of a planar graph at a fixed step,
// so every edge of the result is short. The pkg directory is organized into
// three areas:
//
//  1. Domain: [geom] (points, segments, graphs), [densify] (the subdivision
//     algorithm), and [errors] (coded errors shared by every layer)
//  2. Infrastructure: [io] (JSON import and export), [cache] (file, Redis,
//     and null caches), [observability] (hooks for logs and metrics), and
//     [render] (DOT generation and Graphviz rendering)
//  3. Orchestration: [pipeline] (densify then render, with caching) and
//     [server] (the HTTP API)
//
// # Architecture
//
// The typical data flow:
//
//	JSON segments
//	     ↓
//	[io] package (parse into a geom.Graph)
//	     ↓
//	[densify] package (subdivide every segment)
//	     ↓
//	[render] package (DOT, SVG, PNG)
//	     ↓
//	JSON/DOT/SVG/PNG output
//
// [pipeline.Runner] ties these stages together and caches both the dense
// graph and the rendered artifacts.
//
// # Quick Start
//
//	g, err := io.ReadJSON(r)
//	if err != nil {
//	    return err
//	}
//	dense, stats, err := densify.GraphStats(ctx, g, 2, densify.Options{})
//
// # Subpackages
//
//   - [geom]: Point, Segment, Graph, and bounds
//   - [densify]: Segment and Graph subdivision
//   - [errors]: coded errors and validation helpers
//   - [io]: JSON graph formats
//   - [cache]: Cache interface, keyers, and backends
//   - [observability]: pipeline, cache, and HTTP hooks
//   - [render]: DOT and Graphviz output
//   - [pipeline]: cached densify and render orchestration
//   - [server]: HTTP API
//   - [buildinfo]: version information
package pkg
