package settings

import (
	"fmt"
	"strings"
)

// ErrCodeOneOf marks a value outside a field's allowed set.
const ErrCodeOneOf = "oneof"

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "settings validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("settings validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "settings validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FieldError represents a single field validation failure.
type FieldError struct {
	FieldPath string // Dotted key (e.g., "hydrate.format")
	Code      string // Error code (e.g., "oneof")
	Message   string // Human-readable description
}
