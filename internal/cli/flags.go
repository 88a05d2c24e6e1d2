package cli

import (
	"github.com/spf13/cobra"

	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/pipeline"
)

// densifyFlags holds the flags shared by every command that densifies.
type densifyFlags struct {
	step           float64
	policy         string
	workers        int
	skipDegenerate bool
	maxPoints      int
}

func addDensifyFlags(cmd *cobra.Command, f *densifyFlags) {
	cmd.Flags().Float64VarP(&f.step, "step", "s", pipeline.DefaultStep, "distance between consecutive points")
	cmd.Flags().StringVar(&f.policy, "policy", pipeline.DefaultPolicy, "point count policy: floor, truncate")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "segments densified concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.skipDegenerate, "skip-degenerate", false, "drop zero-length segments from the output")
	cmd.Flags().IntVar(&f.maxPoints, "max-points", densify.DefaultMaxPoints, "maximum points generated for one segment")
}

// densifyOptions merges the config file with any flags set on cmd.
func (c *CLI) densifyOptions(cmd *cobra.Command, f *densifyFlags) (pipeline.Options, error) {
	cfg := c.Config
	opts := pipeline.Options{
		Step:           cfg.Step,
		Policy:         cfg.Policy,
		Workers:        cfg.Workers,
		SkipDegenerate: cfg.SkipDegenerate,
		MaxPoints:      cfg.MaxPoints,
		Formats:        cfg.Formats,
		Width:          cfg.Width,
		Logger:         c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("step") {
		opts.Step = f.step
	}
	if flags.Changed("policy") {
		opts.Policy = f.policy
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	if flags.Changed("skip-degenerate") {
		opts.SkipDegenerate = f.skipDegenerate
	}
	if flags.Changed("max-points") {
		opts.MaxPoints = f.maxPoints
	}

	// A zero step would otherwise be replaced by the default.
	if err := pipeline.ValidateStep(opts.Step); err != nil {
		return opts, err
	}
	return opts, opts.ValidateForDensify()
}
