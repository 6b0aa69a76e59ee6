package notify

import "fmt"

// ValidationError reports a missing or out-of-range request field. It is
// surfaced as a 400 with the offending field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field}
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
