// Package pipeline provides the densify → render pipeline for densify.
//
// The CLI and the HTTP API both run graphs through a [Runner] so that option
// defaults, caching, and logging behave the same at every entry point.
//
// # Stages
//
//  1. Densify: split every segment at a fixed step (see [densify.Graph])
//  2. Render: produce artifacts in the requested formats (json, dot, svg, png)
//
// Each stage is cached independently. The densify stage is keyed by the
// input graph's content hash and the densify options; each artifact is keyed
// by the input and dense hashes plus its render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Step:    3,
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run a single stage:
//
//	dense, stats, err := runner.Densify(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, g, dense, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/euclid-tools/densify/pkg/cache"
	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/errors"
	"github.com/euclid-tools/densify/pkg/geom"
	"github.com/euclid-tools/densify/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStep is the sampling interval used when none is given.
	DefaultStep = 1.0

	// DefaultPolicy is the point-count policy used when none is given.
	DefaultPolicy = string(densify.PolicyFloor)

	// DefaultWidth is the default drawing width in points.
	DefaultWidth = render.DefaultWidth
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Densify options
	Step           float64 `json:"step"`
	Policy         string  `json:"policy,omitempty"`
	Workers        int     `json:"workers,omitempty"`
	SkipDegenerate bool    `json:"skip_degenerate,omitempty"`
	MaxPoints      int     `json:"max_points,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Width        float64  `json:"width,omitempty"`
	ShowOriginal bool     `json:"show_original,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Dense is the densified graph.
	Dense geom.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// DenseHash is the content hash of the densified graph.
	DenseHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	densify.Stats
	DensifyTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DensifyHit bool // Whether the dense graph came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateStep checks that a step is a positive finite number.
func ValidateStep(step float64) error {
	return errors.ValidateStep(step)
}

// ValidatePolicy checks that a policy name is known. Empty is accepted.
func ValidatePolicy(policy string) error {
	_, err := densify.ParsePolicy(policy)
	return err
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDensify(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDensifyDefaults sets default values for densification.
func (o *Options) SetDensifyDefaults() {
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	if o.MaxPoints == 0 {
		o.MaxPoints = densify.DefaultMaxPoints
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForDensify sets densify defaults and validates the densify fields.
func (o *Options) ValidateForDensify() error {
	o.SetDensifyDefaults()
	if err := ValidateStep(o.Step); err != nil {
		return err
	}
	if o.MaxPoints < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_points must not be negative, got %d", o.MaxPoints)
	}
	return ValidatePolicy(o.Policy)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates the render fields.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %g", o.Width)
	}
	return ValidateFormats(o.Formats)
}

// DensifyOptions converts o into options for the densify package.
func (o *Options) DensifyOptions() densify.Options {
	return densify.Options{
		Policy:         densify.Policy(o.Policy),
		Workers:        o.Workers,
		SkipDegenerate: o.SkipDegenerate,
		MaxPoints:      o.MaxPoints,
	}
}

// RenderOptions converts o into options for the render package.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Width:        o.Width,
		ShowOriginal: o.ShowOriginal,
	}
}

// DenseKeyOpts returns cache key options for densification.
// Workers is omitted because it never changes the output.
func (o *Options) DenseKeyOpts() cache.DenseKeyOpts {
	return cache.DenseKeyOpts{
		Step:           o.Step,
		Policy:         o.Policy,
		SkipDegenerate: o.SkipDegenerate,
		MaxPoints:      o.MaxPoints,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		ShowOriginal: o.ShowOriginal,
	}
}
