package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateStep checks that a step length is a finite, strictly positive number.
func ValidateStep(step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return New(ErrCodeInvalidStep, "step must be finite, got %g", step)
	}
	if step <= 0 {
		return New(ErrCodeInvalidStep, "step must be positive, got %g", step)
	}
	return nil
}

// ValidateCoordinates checks that every value is finite.
// The name identifies the offending value in the error message.
func ValidateCoordinates(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidSegment, "%s has non-finite coordinate %g", name, v)
		}
	}
	return nil
}

// ValidatePath validates an output file path supplied over an untrusted
// channel (for example a config file shared between users).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
