package predict

import (
	"errors"
	"fmt"
)

// InputError reports a submitted value that cannot be coerced: malformed
// numbers, a missing field or unit-stripped token, or a brand outside the
// catalog. The model is never called when one is returned.
type InputError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps every failure after input parsing succeeded:
// inference errors, non-finite model output, cancelled requests, panics.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// Kind names the error bucket for API clients.
func Kind(err error) string {
	if IsInputError(err) {
		return "input"
	}
	return "unexpected"
}

// Message renders err the way the form shows it.
func Message(err error) string {
	if IsInputError(err) {
		return fmt.Sprintf("Input error: %v", err)
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
