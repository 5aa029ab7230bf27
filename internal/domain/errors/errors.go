package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrEmptyLogin    = errors.New("login can not be empty")
)

// FieldError describes a single violated constraint of a payload.
type FieldError struct {
	Message string
	Path    []string
}

// ValidationError collects every constraint violation found in a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
