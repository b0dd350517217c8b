package errors

import (
	"unicode"
	"unicode/utf8"
)

// MaxK is the largest anonymity level accepted at the public entry points.
// Larger values cannot be meaningful for any in-memory graph.
const MaxK = 1 << 20

// ValidateK checks the anonymity level k at a public boundary.
// k must be at least 1; k = 0 is undefined for both algorithms.
func ValidateK(k int) error {
	if k < 1 {
		return New(ErrCodeInvalidInput, "k must be at least 1, got %d", k)
	}
	if k > MaxK {
		return New(ErrCodeInvalidInput, "k too large (max %d), got %d", MaxK, k)
	}
	return nil
}

// ValidateFilePath validates a local input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateDelimiter validates an edge-list field delimiter.
// It must be exactly one printable rune or a tab, and not a quote or newline.
func ValidateDelimiter(delim string) error {
	if utf8.RuneCountInString(delim) != 1 {
		return New(ErrCodeInvalidConfig, "delimiter must be a single character, got %q", delim)
	}
	r, _ := utf8.DecodeRuneInString(delim)
	switch {
	case r == '\t':
		return nil
	case r == '\n' || r == '\r' || r == '"':
		return New(ErrCodeInvalidConfig, "delimiter %q is not allowed", delim)
	case !unicode.IsPrint(r):
		return New(ErrCodeInvalidConfig, "delimiter must be printable, got %q", delim)
	}
	return nil
}
