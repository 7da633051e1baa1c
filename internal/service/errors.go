// Package service implements the booking and availability engine: request
// validation, overlap-based availability checks, pricing, reservation
// number allocation and lifecycle transitions.  Handlers translate its
// typed errors into HTTP responses; store failures pass through unchanged.
package service

import "fmt"

// ValidationError reports a request the caller can correct: a bad date
// range, an exhausted room type, or an edit of a non-CONFIRMED
// reservation.  Handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown reservation number.  Handlers map it
// to 404.
type NotFoundError struct {
	Number string
}

func (e *NotFoundError) Error() string {
	return "reservation not found: " + e.Number
}
