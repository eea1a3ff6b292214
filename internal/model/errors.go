package model

import "fmt"

// FieldError reports an invalid engine input, naming the offending field.
// Engines fail fast on these rather than clamping to a default.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Errf builds a FieldError with a formatted reason.
func Errf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
