package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/euclid-tools/densify/pkg/geom"
)

func TestToDOT(t *testing.T) {
	original := geom.Graph{seg(0, 0, 2, 0)}
	dense := geom.Graph{
		seg(0, 0, 1, 0),
		seg(1, 0, 2, 0),
	}

	dot := ToDOT(original, dense, Options{Width: 100})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`p0 [pos="0,0!", width=0.08, color="#d62728"];`,
		`p1 [pos="50,0!"];`,
		`p2 [pos="100,0!", width=0.08, color="#d62728"];`,
		"p0 -- p1;",
		"p1 -- p2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "o0") {
		t.Error("ToDOT() should not draw original segments unless ShowOriginal is set")
	}
}

func TestToDOTSharesCoincidentPoints(t *testing.T) {
	square := geom.Graph{
		seg(0, 0, 1, 0),
		seg(1, 0, 1, 1),
		seg(1, 1, 0, 1),
		seg(0, 1, 0, 0),
	}

	dot := ToDOT(square, square, Options{})

	if got := strings.Count(dot, "[pos="); got != 4 {
		t.Errorf("ToDOT() declared %d nodes, want 4:\n%s", got, dot)
	}
	if !strings.Contains(dot, "p3 -- p0;") {
		t.Errorf("ToDOT() should close the outline on the first node:\n%s", dot)
	}
}

func TestToDOTShowOriginal(t *testing.T) {
	original := geom.Graph{seg(0, 0, 0, 4)}
	dense := geom.Graph{seg(0, 0, 0, 2), seg(0, 2, 0, 4)}

	dot := ToDOT(original, dense, Options{Width: 40, ShowOriginal: true})

	// A vertical graph has zero width, so height drives the scale.
	for _, want := range []string{
		`o0 [pos="0,0!", style=invis];`,
		`o1 [pos="0,40!", style=invis];`,
		`o0 -- o1 [color="#999999", style=dashed];`,
		`p1 [pos="0,20!"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, nil, Options{})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q, want an empty graph", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %q, want prefix %q", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() without viewBox = %q, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	g := geom.Graph{seg(0, 0, 1, 0), seg(1, 0, 1, 1)}
	svg, err := RenderSVG(context.Background(), ToDOT(g, g, Options{Width: 200}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("RenderSVG() output is not SVG: %.80s", svg)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("RenderSVG() with invalid DOT should fail")
	}
}

func seg(x0, y0, x1, y1 float64) geom.Segment {
	return geom.Seg(geom.Pt(x0, y0), geom.Pt(x1, y1))
}
