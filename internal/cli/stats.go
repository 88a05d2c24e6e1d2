package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/euclid-tools/densify/pkg/densify"
	pkgio "github.com/euclid-tools/densify/pkg/io"
)

// statsCommand creates the stats command, which describes a graph file and
// projects the size of its densified form.
func (c *CLI) statsCommand() *cobra.Command {
	var flags densifyFlags

	cmd := &cobra.Command{
		Use:   "stats <graph.json>",
		Short: "Show graph statistics and the densified size for a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.densifyOptions(cmd, &flags)
			if err != nil {
				return err
			}
			g, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			_, stats, err := densify.GraphStats(cmd.Context(), g, opts.Step, opts.DensifyOptions())
			if err != nil {
				return err
			}

			printKeyValue("segments", strconv.Itoa(len(g)))
			printKeyValue("length", formatFloat(g.Length()))
			if b, ok := g.Bounds(); ok {
				printKeyValue("bounds", fmt.Sprintf("%v to %v", b.Min, b.Max))
				printKeyValue("size", fmt.Sprintf("%s × %s", formatFloat(b.Width()), formatFloat(b.Height())))
			}
			printKeyValue("degenerate", strconv.Itoa(stats.Degenerate))
			printKeyValue("vertical", strconv.Itoa(stats.Vertical))
			printKeyValue("step", formatFloat(opts.Step))
			printKeyValue("output", strconv.Itoa(stats.Output))
			printNextStep("Densify it", fmt.Sprintf("%s run %s --step %s", appName, args[0], formatFloat(opts.Step)))
			return nil
		},
	}

	addDensifyFlags(cmd, &flags)
	return cmd
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
