// Package render draws densified graphs with Graphviz.
//
// # Overview
//
// Rendering happens in two steps. [ToDOT] converts a graph into DOT text in
// which every vertex is pinned to its plane coordinates, so the neato engine
// keeps the geometry instead of computing its own layout. [RenderSVG] and
// [RenderPNG] then run Graphviz (compiled to WebAssembly by go-graphviz, so
// no system binary is needed) over that text.
//
//	dot := render.ToDOT(original, dense, render.Options{Width: 800, ShowOriginal: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Interior points produced by densification are drawn as small dots; the
// endpoints of the input segments are drawn larger. With ShowOriginal set the
// input segments are drawn underneath in grey.
package render
