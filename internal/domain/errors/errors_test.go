package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"empty login", ErrEmptyLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := error(&ValidationError{Fields: []FieldError{
		{Message: `"login" is required`, Path: []string{"login"}},
		{Message: `"age" is required`, Path: []string{"age"}},
	}})

	want := `validation failed: "login" is required; "age" is required`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	var vErr *ValidationError
	if !stdErrors.As(fmt.Errorf("wrap: %w", err), &vErr) || len(vErr.Fields) != 2 {
		t.Fatalf("expected errors.As to unwrap validation error")
	}
}
