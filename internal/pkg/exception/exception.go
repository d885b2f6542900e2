package exception

import (
	"errors"
	"fmt"
)

// RequestErrorKind classifies how a backend call failed.
type RequestErrorKind string

const (
	RequestErrorTimeout RequestErrorKind = "timeout"
	RequestErrorHTTP    RequestErrorKind = "http"
	RequestErrorNetwork RequestErrorKind = "network"
)

// RequestError is returned when a backend round trip fails: the deadline
// expired, the transport failed, or the server answered with a non-2xx status.
type RequestError struct {
	Kind       RequestErrorKind
	StatusCode int
	Body       string
	Cause      error
}

func (e RequestError) Error() string {
	switch e.Kind {
	case RequestErrorTimeout:
		return "request timed out"
	case RequestErrorHTTP:
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("request failed: %s", e.Cause)
		}

		return "request failed"
	}
}

func (e RequestError) Unwrap() error {
	return e.Cause
}

func (e RequestError) Is(target error) bool {
	var targetErr RequestError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Kind == targetErr.Kind
}

// ValidationError is a local, pre-request rejection of user input.
// It never reaches the network layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	var targetErr ValidationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return (targetErr.Field == "" || e.Field == targetErr.Field) &&
		(targetErr.Reason == "" || e.Reason == targetErr.Reason)
}

// BusinessError is a backend-side refusal of an otherwise well-formed request,
// e.g. no seats left on the flight. Distinct from ValidationError so callers
// can tell local rejection from authoritative rejection.
type BusinessError struct {
	Message    string
	StatusCode int
}

func (e BusinessError) Error() string {
	return e.Message
}

func (e BusinessError) Is(target error) bool {
	var targetErr BusinessError

	if !errors.As(target, &targetErr) {
		return false
	}

	return targetErr.Message == "" || e.Message == targetErr.Message
}

// IsRequestError reports whether err wraps a RequestError of any kind.
func IsRequestError(err error) bool {
	var reqErr RequestError

	return errors.As(err, &reqErr)
}

// IsValidationError reports whether err wraps a local ValidationError.
func IsValidationError(err error) bool {
	var valErr ValidationError

	return errors.As(err, &valErr)
}
