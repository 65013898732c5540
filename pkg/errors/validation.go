package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateIndex checks that index addresses one of n tiles.
func ValidateIndex(index, n int) error {
	if index < 0 || index >= n {
		return New(ErrCodeIndexOutOfRange, "tile %d not in partition of %d tiles", index, n)
	}
	return nil
}

// ValidateDimensions validates a rectangle's width and height.
//
// Both must be finite and strictly positive. A minimum greater than zero
// additionally rejects anything smaller than min on either axis; this is how
// repeated splitting is stopped before tiles collapse to zero area.
func ValidateDimensions(width, height, min float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeDegenerateSplit, "non-finite tile size %gx%g", width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeDegenerateSplit, "tile size %gx%g has no area", width, height)
	}
	if min > 0 && (width < min || height < min) {
		return New(ErrCodeDegenerateSplit, "tile size %gx%g below minimum %g", width, height, min)
	}
	return nil
}

// ValidateOutputPath validates a file path used for export output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}
