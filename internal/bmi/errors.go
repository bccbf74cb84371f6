// ABOUTME: Validation error taxonomy for raw weight and height input.
// ABOUTME: ValidationError carries the offending field and the failure kind.
package bmi

import (
	"errors"
	"fmt"
)

// Field names a user-facing input.
type Field string

const (
	FieldWeight Field = "weight"
	FieldHeight Field = "height"
)

// Label returns the capitalized field name for messages.
func (f Field) Label() string {
	switch f {
	case FieldWeight:
		return "Weight"
	case FieldHeight:
		return "Height"
	default:
		return string(f)
	}
}

// Kind classifies a validation failure.
type Kind int

const (
	Missing Kind = iota + 1
	NotANumber
	NotPositive
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case NotANumber:
		return "not a number"
	case NotPositive:
		return "not positive"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a *ValidationError of that kind.
var (
	ErrMissing     = errors.New("missing value")
	ErrNotANumber  = errors.New("not a number")
	ErrNotPositive = errors.New("not positive")
	ErrOutOfRange  = errors.New("out of range")
)

// ValidationError reports why one input was rejected.
type ValidationError struct {
	Field Field
	Kind  Kind
	Input string
}

func (e *ValidationError) Error() string {
	if e.Kind == Missing {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %q", e.Field, e.Kind, e.Input)
}

// Is matches the sentinel for the error's kind.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissing:
		return e.Kind == Missing
	case ErrNotANumber:
		return e.Kind == NotANumber
	case ErrNotPositive:
		return e.Kind == NotPositive
	case ErrOutOfRange:
		return e.Kind == OutOfRange
	}
	return false
}
