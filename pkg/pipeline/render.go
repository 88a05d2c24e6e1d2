package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/euclid-tools/densify/pkg/geom"
	pkgio "github.com/euclid-tools/densify/pkg/io"
	"github.com/euclid-tools/densify/pkg/render"
)

// Render generates output artifacts in the requested formats without caching.
// original is the input graph and may be nil; it is used to highlight input
// endpoints and, with ShowOriginal, to draw the input underneath.
func Render(ctx context.Context, original, dense geom.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		if format != FormatJSON && dot == "" {
			dot = render.ToDOT(original, dense, opts.RenderOptions())
		}

		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteJSON(dense, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
