// Package io provides JSON import and export for segment graphs.
//
// # JSON Format
//
// A graph is an object with a single "segments" array. Each segment is a
// pair of points and each point is an [x, y] pair of numbers:
//
//	{
//	  "segments": [
//	    [[0, 0], [10, 0]],
//	    [[10, 0], [10, 5]]
//	  ]
//	}
//
// On read, a bare top-level array of segments is accepted as well, which is
// the layout produced by most plotting and GIS scripts:
//
//	[[[0, 0], [10, 0]], [[10, 0], [10, 5]]]
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("map.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every segment must have exactly two points of exactly two finite numbers.
// Violations fail with INVALID_GRAPH and name the offending segment index.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, [WriteJSON] to write to any
// io.Writer, or [MarshalGraph] for a compact byte slice suitable for hashing
// and caching. Export always uses the object form, so exported files
// round-trip through [ReadJSON] unchanged.
package io
