package errors

import (
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds canvas node identifiers.
const MaxNodeIDLength = 256

// ValidateNodeID validates a canvas node identifier.
//
// Node ids are opaque to the layout engine, but canvases read from disk or
// received over HTTP are checked so that ids stay printable:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePath validates a file path given to the CLI for safety.
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

	if strings.ContainsFunc(path, func(r rune) bool { return r == '\x00' || unicode.IsControl(r) }) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}
