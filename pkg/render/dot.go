package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/euclid-tools/densify/pkg/geom"
)

// DefaultWidth is the drawing width in points when Options.Width is zero.
const DefaultWidth = 800.0

// Options configures DOT generation.
type Options struct {
	// Width is the target drawing width in points. Zero means DefaultWidth.
	Width float64

	// ShowOriginal draws the input segments underneath the dense graph.
	ShowOriginal bool

	// PointSize is the diameter of interior points in inches. Zero means 0.04.
	PointSize float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.PointSize <= 0 {
		o.PointSize = 0.04
	}
	return o
}

// ToDOT converts a densified graph to Graphviz DOT text with pinned node
// positions. original may be nil; its endpoints are highlighted and, with
// ShowOriginal, its segments are drawn as well.
//
// Coincident points share a node, so a closed outline renders as one
// connected polygon.
func ToDOT(original, dense geom.Graph, opts Options) string {
	opts = opts.withDefaults()

	bounds, ok := dense.Bounds()
	if !ok {
		bounds, ok = original.Bounds()
	}
	scale := 1.0
	if ok && bounds.Width() > 0 {
		scale = opts.Width / bounds.Width()
	} else if ok && bounds.Height() > 0 {
		scale = opts.Width / bounds.Height()
	}

	endpoints := make(map[geom.Point]bool, 2*len(original))
	for _, s := range original {
		endpoints[s.A] = true
		endpoints[s.B] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=point, width=%s, color=\"#1f77b4\"];\n", ftoa(opts.PointSize))
	buf.WriteString("  edge [color=\"#1f77b4\", penwidth=1.5];\n")
	buf.WriteString("\n")

	if opts.ShowOriginal && len(original) > 0 {
		ids := make(map[geom.Point]string)
		for _, s := range original {
			a := pinned(&buf, ids, "o", s.A, bounds.Min, scale, `style=invis`)
			b := pinned(&buf, ids, "o", s.B, bounds.Min, scale, `style=invis`)
			fmt.Fprintf(&buf, "  %s -- %s [color=\"#999999\", style=dashed];\n", a, b)
		}
		buf.WriteString("\n")
	}

	ids := make(map[geom.Point]string)
	for _, s := range dense {
		a := pinned(&buf, ids, "p", s.A, bounds.Min, scale, endpointAttrs(endpoints, s.A, opts))
		b := pinned(&buf, ids, "p", s.B, bounds.Min, scale, endpointAttrs(endpoints, s.B, opts))
		fmt.Fprintf(&buf, "  %s -- %s;\n", a, b)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pinned returns the node ID for p, declaring the node on first use.
func pinned(buf *bytes.Buffer, ids map[geom.Point]string, prefix string, p, origin geom.Point, scale float64, attrs string) string {
	if id, ok := ids[p]; ok {
		return id
	}
	id := prefix + strconv.Itoa(len(ids))
	ids[p] = id

	x := (p.X - origin.X) * scale
	y := (p.Y - origin.Y) * scale
	fmt.Fprintf(buf, "  %s [pos=\"%s,%s!\"", id, ftoa(x), ftoa(y))
	if attrs != "" {
		buf.WriteString(", ")
		buf.WriteString(attrs)
	}
	buf.WriteString("];\n")
	return id
}

func endpointAttrs(endpoints map[geom.Point]bool, p geom.Point, opts Options) string {
	if !endpoints[p] {
		return ""
	}
	return fmt.Sprintf("width=%s, color=\"#d62728\"", ftoa(opts.PointSize*2))
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
