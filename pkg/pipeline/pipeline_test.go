package pipeline

import (
	"testing"

	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		policy  string
		wantErr bool
	}{
		{"", false},
		{"floor", false},
		{"truncate", false},
		{"round", true},
		{"Floor", true},
	}

	for _, tt := range tests {
		err := ValidatePolicy(tt.policy)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePolicy(%q) error = %v, wantErr %v", tt.policy, err, tt.wantErr)
		}
	}
}

func TestSetDensifyDefaults(t *testing.T) {
	opts := Options{}
	opts.SetDensifyDefaults()

	if opts.Step != DefaultStep {
		t.Errorf("Step should be %g, got %g", DefaultStep, opts.Step)
	}
	if opts.Policy != DefaultPolicy {
		t.Errorf("Policy should be %s, got %s", DefaultPolicy, opts.Policy)
	}
	if opts.MaxPoints != densify.DefaultMaxPoints {
		t.Errorf("MaxPoints should be %d, got %d", densify.DefaultMaxPoints, opts.MaxPoints)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %g, got %g", DefaultWidth, opts.Width)
	}
}

func TestOptionsValidateForDensify(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative step", Options{Step: -1}, errors.ErrCodeInvalidStep},
		{"unknown policy", Options{Step: 1, Policy: "round"}, errors.ErrCodeInvalidPolicy},
		{"negative max points", Options{Step: 1, MaxPoints: -5}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForDensify()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForDensify() = %v, want code %s", err, tt.code)
			}
		})
	}

	opts := Options{Step: 2.5, Policy: "truncate"}
	if err := opts.ValidateForDensify(); err != nil {
		t.Errorf("ValidateForDensify() = %v, want nil", err)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Width: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative width should fail")
	}

	opts = Options{Formats: []string{"pdf"}}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateForRender() = %v, want INVALID_FORMAT", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Step: 3}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	step, policy, formats := opts.Step, opts.Policy, len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Step != step {
		t.Error("Step changed on second call")
	}
	if opts.Policy != policy {
		t.Error("Policy changed on second call")
	}
	if len(opts.Formats) != formats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	opts := Options{Step: 2, Policy: "floor", Workers: 8, MaxPoints: 10, Width: 300, ShowOriginal: true}

	dk := opts.DenseKeyOpts()
	if dk.Step != 2 || dk.Policy != "floor" || dk.MaxPoints != 10 {
		t.Errorf("DenseKeyOpts() = %+v", dk)
	}

	ak := opts.ArtifactKeyOpts("svg")
	if ak.Format != "svg" || ak.Width != 300 || !ak.ShowOriginal {
		t.Errorf("ArtifactKeyOpts() = %+v", ak)
	}

	do := opts.DensifyOptions()
	if do.Workers != 8 || do.Policy != densify.PolicyFloor {
		t.Errorf("DensifyOptions() = %+v", do)
	}
}
