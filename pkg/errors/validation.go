package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextSize is the largest input accepted by ValidateText (1 MiB).
const MaxTextSize = 1 << 20

// ValidateText validates text submitted for formatting.
//
// The validation rules are intentionally conservative:
//   - Must be valid UTF-8
//   - No null bytes
//   - Maximum size of MaxTextSize bytes
//
// Empty text is valid; it formats to empty output.
func ValidateText(text string) error {
	if len(text) > MaxTextSize {
		return New(ErrCodeInvalidInput, "text too large (max %d bytes)", MaxTextSize)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "text contains null bytes")
	}
	return nil
}

// ValidatePath validates a profile or input file path for safety.
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

// ValidateCharClass validates extra sentence-terminator characters
// (terminal punctuation or quotes). Whitespace would make every word
// boundary look like a sentence end, so it is rejected.
func ValidateCharClass(name, chars string) error {
	for _, r := range chars {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s contains whitespace or control characters", name)
		}
	}
	return nil
}
