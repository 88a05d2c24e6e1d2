package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/euclid-tools/densify/pkg/geom"
)

type graph struct {
	Segments [][2][2]float64 `json:"segments"`
}

func fromGraph(g geom.Graph) graph {
	return graph{Segments: Coordinates(g)}
}

// Coordinates returns g in wire form: one [[x1, y1], [x2, y2]] pair per
// segment. It never returns nil, so an empty graph encodes as [].
func Coordinates(g geom.Graph) [][2][2]float64 {
	out := make([][2][2]float64, len(g))
	for i, s := range g {
		out[i] = [2][2]float64{{s.A.X, s.A.Y}, {s.B.X, s.B.Y}}
	}
	return out
}

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g geom.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph encodes g as compact JSON.
func MarshalGraph(g geom.Graph) ([]byte, error) {
	return json.Marshal(fromGraph(g))
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g geom.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
