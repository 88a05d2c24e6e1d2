package densify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/euclid-tools/densify/pkg/errors"
	"github.com/euclid-tools/densify/pkg/geom"
)

// Stats summarizes a Graph run.
type Stats struct {
	Input      int `json:"input"`      // input segments
	Output     int `json:"output"`     // output segments
	Points     int `json:"points"`     // points across emitted per-segment results
	Degenerate int `json:"degenerate"` // zero-length input segments
	Vertical   int `json:"vertical"`   // segments densified along y
}

// Graph densifies every segment of g and flattens the results into two-point
// segments, preserving input order. The input is not modified.
func Graph(ctx context.Context, g geom.Graph, step float64, opts Options) (geom.Graph, error) {
	out, _, err := GraphStats(ctx, g, step, opts)
	return out, err
}

// GraphStats is Graph with run statistics.
func GraphStats(ctx context.Context, g geom.Graph, step float64, opts Options) (geom.Graph, Stats, error) {
	if err := errors.ValidateStep(step); err != nil {
		return nil, Stats{}, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, Stats{}, err
	}

	results := make([]Result, len(g))
	if opts.Workers > 1 && len(g) > 1 {
		err = densifyParallel(ctx, g, step, opts, results)
	} else {
		err = densifySequential(ctx, g, step, opts, results)
	}
	if err != nil {
		return nil, Stats{}, err
	}

	out, stats := flatten(results, opts.SkipDegenerate)
	return out, stats, nil
}

func densifySequential(ctx context.Context, g geom.Graph, step float64, opts Options, results []Result) error {
	for i, s := range g {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := segment(s, step, opts)
		if err != nil {
			return fmt.Errorf("densify: segment %d: %w", i, err)
		}
		results[i] = r
	}
	return nil
}

func densifyParallel(ctx context.Context, g geom.Graph, step float64, opts Options, results []Result) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for i, s := range g {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := segment(s, step, opts)
			if err != nil {
				return fmt.Errorf("densify: segment %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	return eg.Wait()
}

func flatten(results []Result, skipDegenerate bool) (geom.Graph, Stats) {
	stats := Stats{Input: len(results)}
	total := 0
	for _, r := range results {
		total += len(r.Points) - 1
	}

	out := make(geom.Graph, 0, total)
	for _, r := range results {
		switch r.Kind {
		case KindDegenerate:
			stats.Degenerate++
			if skipDegenerate {
				continue
			}
		case KindByY:
			stats.Vertical++
		}
		stats.Points += len(r.Points)
		for i := 0; i+1 < len(r.Points); i++ {
			out = append(out, geom.Seg(r.Points[i], r.Points[i+1]))
		}
	}
	stats.Output = len(out)
	return out, stats
}
