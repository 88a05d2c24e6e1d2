package cli

import (
	"context"

	"github.com/spf13/cobra"

	pkgio "github.com/euclid-tools/densify/pkg/io"
	"github.com/euclid-tools/densify/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	densifyFlags
	output       string // output file (single format) or base path (multiple)
	formats      string // comma-separated output formats
	width        float64
	showOriginal bool
	noCache      bool
	refresh      bool
}

// runCommand creates the run command, which densifies a graph file and
// writes the result in one or more formats.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <graph.json>",
		Short: "Densify a graph and write the result",
		Long: `Densify every segment of a graph at a fixed step and write the result.

The input is JSON of the form {"segments": [[[x1, y1], [x2, y2]], ...]};
a bare array of segments is accepted too. Without -o, outputs are written
next to the input as <name>.dense.<format>.`,
		Example: `  densify run examples/tracker_outer.json --step 3
  densify run graph.json -s 0.5 --format json,svg -o out/graph
  densify run graph.json --format json -o - | jq '.segments | length'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.densifyOptions(cmd, &opts.densifyFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				popts.Formats = parseFormats(opts.formats)
			}
			if cmd.Flags().Changed("width") {
				popts.Width = opts.width
			}
			popts.ShowOriginal = opts.showOriginal
			popts.Refresh = opts.refresh
			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			return c.runRun(cmd.Context(), args[0], opts, popts)
		},
	}

	addDensifyFlags(cmd, &opts.densifyFlags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "drawing width in points (dot, svg, png)")
	cmd.Flags().BoolVar(&opts.showOriginal, "show-original", false, "draw the input segments underneath (dot, svg, png)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, input string, opts runOpts, popts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	paths, err := outputPaths(opts.output, input, ".dense", popts.Formats)
	if err != nil {
		return err
	}

	g, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded graph", "file", input, "segments", len(g))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, g, popts)
	if err != nil {
		return err
	}

	written, err := writeArtifacts(res.Artifacts, popts.Formats, paths)
	if err != nil {
		return err
	}
	if opts.output == stdoutPath {
		return nil
	}

	prog.done("densified", "file", input)
	printSuccess("Densified %d segments into %d at step %g", res.Stats.Input, res.Stats.Output, popts.Step)
	printStats(res.Stats.Input, res.Stats.Output, res.CacheInfo.DensifyHit)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
