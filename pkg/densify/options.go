package densify

import (
	"math"

	"github.com/euclid-tools/densify/pkg/errors"
)

// DefaultMaxPoints bounds the interior points generated for a single segment.
const DefaultMaxPoints = 1_000_000

// Policy selects how the interior point count is derived from a segment's
// length and the step.
type Policy string

const (
	// PolicyFloor uses floor(length / step).
	PolicyFloor Policy = "floor"

	// PolicyTruncate uses floor(trunc(length) / step).
	PolicyTruncate Policy = "truncate"
)

// ParsePolicy converts a user-supplied name into a Policy.
// An empty name selects [PolicyFloor].
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFloor:
		return PolicyFloor, nil
	case PolicyTruncate:
		return PolicyTruncate, nil
	}
	return "", errors.New(errors.ErrCodeInvalidPolicy, "invalid policy: %q (must be one of: floor, truncate)", s)
}

// count returns the number of interior points before end-point trimming.
func (p Policy) count(length, step float64) float64 {
	if p == PolicyTruncate {
		length = math.Trunc(length)
	}
	return math.Floor(length / step)
}

// Options configures densification. The zero value is ready to use.
type Options struct {
	// Policy controls the interior point count. Empty means PolicyFloor.
	Policy Policy

	// Workers is the number of goroutines used by Graph.
	// Values below two process segments sequentially.
	Workers int

	// SkipDegenerate drops zero-length input segments from Graph output
	// instead of emitting a single zero-length segment for each.
	SkipDegenerate bool

	// MaxPoints caps interior points per segment. Zero means DefaultMaxPoints.
	MaxPoints int
}

func (o Options) withDefaults() (Options, error) {
	p, err := ParsePolicy(string(o.Policy))
	if err != nil {
		return o, err
	}
	o.Policy = p
	if o.MaxPoints <= 0 {
		o.MaxPoints = DefaultMaxPoints
	}
	return o, nil
}
