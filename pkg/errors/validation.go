package errors

import (
	"strings"
	"unicode"
)

// Frame and playback limits shared by the pipeline, the CLI and the server.
const (
	MinDimension = 16
	MaxDimension = 7680
	MinFPS       = 1
	MaxFPS       = 120
)

// ValidatePath validates an output or config path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}

// ValidateDimensions checks that a frame size is within [MinDimension, MaxDimension].
func ValidateDimensions(width, height int) error {
	if width < MinDimension || width > MaxDimension {
		return New(ErrCodeInvalidDimensions, "width %d out of range [%d, %d]", width, MinDimension, MaxDimension)
	}
	if height < MinDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "height %d out of range [%d, %d]", height, MinDimension, MaxDimension)
	}
	return nil
}

// ValidateFPS checks that a frame rate is within [MinFPS, MaxFPS].
func ValidateFPS(fps int) error {
	if fps < MinFPS || fps > MaxFPS {
		return New(ErrCodeInvalidInput, "fps %d out of range [%d, %d]", fps, MinFPS, MaxFPS)
	}
	return nil
}

// ValidateColor checks that s is a hex color of the form #RGB, #RRGGBB or #RRGGBBAA.
// The leading '#' is optional.
func ValidateColor(s string) error {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 6, 8:
	default:
		return New(ErrCodeInvalidInput, "invalid color %q (want #RGB, #RRGGBB or #RRGGBBAA)", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return New(ErrCodeInvalidInput, "invalid color %q (non-hex digit %q)", s, r)
		}
	}
	return nil
}
