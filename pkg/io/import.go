package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/euclid-tools/densify/pkg/errors"
	"github.com/euclid-tools/densify/pkg/geom"
)

// rawGraph accepts arbitrary nesting so shape errors can be reported per segment.
type rawGraph struct {
	Segments [][][]float64 `json:"segments"`
}

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A segment does not have exactly two points
//   - A point does not have exactly two coordinates
//   - A coordinate is not finite
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (geom.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var raw rawGraph
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &raw.Segments)
	} else {
		err = json.Unmarshal(trimmed, &raw)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode")
	}

	g := make(geom.Graph, 0, len(raw.Segments))
	for i, s := range raw.Segments {
		seg, err := toSegment(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "segment %d", i)
		}
		g = append(g, seg)
	}
	return g, nil
}

func toSegment(s [][]float64) (geom.Segment, error) {
	if len(s) != 2 {
		return geom.Segment{}, fmt.Errorf("want 2 points, got %d", len(s))
	}
	var ends [2]geom.Point
	for j, p := range s {
		if len(p) != 2 {
			return geom.Segment{}, fmt.Errorf("point %d: want 2 coordinates, got %d", j, len(p))
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return geom.Segment{}, fmt.Errorf("point %d: non-finite coordinate", j)
			}
		}
		ends[j] = geom.Pt(p[0], p[1])
	}
	return geom.Seg(ends[0], ends[1]), nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// A missing file fails with FILE_NOT_FOUND.
func ImportJSON(path string) (geom.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
