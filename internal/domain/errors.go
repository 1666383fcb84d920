package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound    = errors.New("domain: not found")
	ErrDuplicateID = errors.New("domain: duplicate id")
)

// FieldViolation describes a single invalid field in a mutation request.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field of a request, not just the
// first, so a caller can surface all problems at once.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("domain: validation failed")
	for i, v := range e.Violations {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(v.Field)
		b.WriteString(": ")
		b.WriteString(v.Message)
	}
	return b.String()
}

// Violated records a violation and returns the error for chaining.
func (e *ValidationError) Violated(field, message string) *ValidationError {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
	return e
}

// OrNil returns nil when no violations were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
