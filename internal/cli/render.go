package cli

import (
	"context"

	"github.com/spf13/cobra"

	pkgio "github.com/euclid-tools/densify/pkg/io"
	"github.com/euclid-tools/densify/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	densifyFlags
	output  string
	formats string
	width   float64
	densify bool // densify before drawing and draw the input underneath
	noCache bool
}

// renderCommand creates the render command, which draws a graph file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Draw a graph to SVG, PNG, or DOT",
		Long: `Draw a graph with Graphviz. Input segment endpoints are highlighted.

With --densify the graph is densified first and the input segments are
drawn dashed underneath the result.`,
		Example: `  densify render examples/tracker_outer.json
  densify render graph.json --densify --step 3 --format svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.densifyOptions(cmd, &opts.densifyFlags)
			if err != nil {
				return err
			}
			popts.Formats = []string{pipeline.FormatSVG}
			if cmd.Flags().Changed("format") {
				popts.Formats = parseFormats(opts.formats)
			}
			if cmd.Flags().Changed("width") {
				popts.Width = opts.width
			}
			popts.ShowOriginal = opts.densify
			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, popts)
		},
	}

	addDensifyFlags(cmd, &opts.densifyFlags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "drawing width in points")
	cmd.Flags().BoolVar(&opts.densify, "densify", false, "densify before drawing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts, popts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	paths, err := outputPaths(opts.output, input, "", popts.Formats)
	if err != nil {
		return err
	}

	g, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	drawn := g
	if opts.densify {
		dense, stats, err := runner.Densify(ctx, g, popts)
		if err != nil {
			return err
		}
		logger.Info("densified graph", "segments", stats.Input, "output", stats.Output)
		drawn = dense
	}

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, g, drawn, popts)
	if err != nil {
		return err
	}

	written, err := writeArtifacts(artifacts, popts.Formats, paths)
	if err != nil {
		return err
	}
	if opts.output == stdoutPath {
		return nil
	}

	prog.done("rendered", "file", input)
	printSuccess("Rendered %d segments", len(drawn))
	printStats(len(g), len(drawn), cached)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
