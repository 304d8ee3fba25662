package cloze

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuiz         = errors.New("quiz has no questions")
	ErrNoCorrectAnswer   = errors.New("at least one correct answer is required")
	ErrNoIncorrectAnswer = errors.New("at least one incorrect answer is required")
)

// ValidationError reports a structural precondition that was not met while
// rendering or writing. Unwrap returns the matching sentinel when there is one.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field == "" {
		return "validation failed: " + msg
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, sentinel error) error {
	return &ValidationError{Field: field, Err: sentinel}
}

// UnsupportedFieldError is returned when a value has no field mapping.
type UnsupportedFieldError struct {
	Value  any
	Column string
}

func (e *UnsupportedFieldError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("column %q: value of type %T not supported as a field", e.Column, e.Value)
	}
	return fmt.Sprintf("value of type %T not supported as a field", e.Value)
}
