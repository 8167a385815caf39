package errors

import (
	"strings"
	"unicode"
)

// ValidateDimension validates a user-supplied width or height override.
// Zero means "derive from the input" and is allowed; negatives are not.
func ValidateDimension(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidArgument, "%s cannot be negative, got %d", name, v)
	}
	const maxDimension = 1 << 20
	if v > maxDimension {
		return New(ErrCodeInvalidArgument, "%s too large (max %d), got %d", name, maxDimension, v)
	}
	return nil
}

// ValidateThreshold validates a luminance threshold. Zero selects automatic
// thresholding and is allowed.
func ValidateThreshold(v int) error {
	if v < 0 || v > 255 {
		return New(ErrCodeInvalidArgument, "threshold must be in [0, 255], got %d", v)
	}
	return nil
}

// ValidateOutputPath validates a file path destined for os.WriteFile.
// It rejects empty paths and embedded control characters.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidArgument, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidArgument, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateSeedSpec validates a seed flag value: either empty (no override) or
// a decimal integer.
func ValidateSeedSpec(spec string) error {
	if spec == "" {
		return nil
	}
	s := strings.TrimPrefix(spec, "-")
	if s == "" {
		return New(ErrCodeInvalidArgument, "invalid seed: %q", spec)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidArgument, "seed must be a decimal integer, got %q", spec)
		}
	}
	return nil
}
