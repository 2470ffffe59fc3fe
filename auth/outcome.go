package auth

import (
	"errors"
	"fmt"
)

// Status is the terminal state of one interactive broker flow. The broker is
// opaque; these four states are its entire contract.
type Status int

const (
	StatusSuccess Status = iota
	StatusUserCancel
	StatusHTTPError
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUserCancel:
		return "user_cancel"
	case StatusHTTPError:
		return "http_error"
	default:
		return "unknown"
	}
}

// Outcome is what a Broker reports when its flow terminates.
type Outcome struct {
	Status Status
	// ResponseData carries the callback payload on StatusSuccess.
	ResponseData string
	// Code carries the HTTP status on StatusHTTPError.
	Code int
}

// Broker runs one interactive authentication flow and blocks until it
// terminates. Implementations must be invoked on the UI execution context;
// calling one from an arbitrary goroutine produces silently wrong results
// (indistinguishable from user cancellation), which is exactly what the
// dispatcher exists to prevent.
type Broker interface {
	Authenticate(authURL, callbackURL string) Outcome
}

// Typed rejection reasons surfaced to the promise consumer.
var (
	ErrUserCancelled  = errors.New("authentication cancelled by user")
	ErrUnknownOutcome = errors.New("authentication ended in an unrecognized state")
)

// HTTPError is the typed rejection for a transport-level broker failure.
type HTTPError struct {
	Code int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("authentication failed with HTTP status %d", e.Code)
}

// Result resolves an Authenticate promise: either a response payload or a
// typed rejection, never both.
type Result struct {
	Response string
	Err      error
}

// StringResult resolves a CallbackIdentifier promise.
type StringResult struct {
	Value string
	Err   error
}

func mapOutcome(out Outcome) Result {
	switch out.Status {
	case StatusSuccess:
		return Result{Response: out.ResponseData}
	case StatusUserCancel:
		return Result{Err: ErrUserCancelled}
	case StatusHTTPError:
		return Result{Err: &HTTPError{Code: out.Code}}
	default:
		return Result{Err: ErrUnknownOutcome}
	}
}
