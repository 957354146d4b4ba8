package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds labels so a single node cannot blow up a diagram.
const maxLabelLength = 256

// ValidateNodeID validates an identifier read from input.
//
// IDs must be non-empty, at most 256 bytes long, and free of control
// characters. Surrounding whitespace is not allowed because importers trim
// it and two spellings of the same ID would silently become different nodes.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}
	if len(id) > maxLabelLength {
		return New(ErrCodeInvalidInput, "node ID too long (max %d characters)", maxLabelLength)
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "node ID %q has surrounding whitespace", id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID %q contains control characters", id)
		}
	}
	return nil
}

// ValidateLabel validates a display label. Labels may be empty but must fit
// on one line: diagrams have no room for line breaks, tabs or other control
// characters.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if r == '\n' || r == '\r' {
			return New(ErrCodeInvalidLabel, "label %q spans multiple lines", label)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains control characters", label)
		}
	}
	return nil
}
