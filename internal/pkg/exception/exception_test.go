//go:build unit

package exception

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestError_Is(t *testing.T) {
	timeout := RequestError{Kind: RequestErrorTimeout}
	network := RequestError{Kind: RequestErrorNetwork, Cause: errors.New("refused")}

	assert.ErrorIs(t, timeout, RequestError{Kind: RequestErrorTimeout})
	assert.NotErrorIs(t, network, RequestError{Kind: RequestErrorTimeout})

	// Kind matching survives wrapping.
	wrapped := fmt.Errorf("cpu stress: %w", timeout)
	assert.ErrorIs(t, wrapped, RequestError{Kind: RequestErrorTimeout})
}

func TestRequestError_Error(t *testing.T) {
	assert.Equal(t, "request timed out", RequestError{Kind: RequestErrorTimeout}.Error())
	assert.Equal(t,
		"request failed with status 503: busy",
		RequestError{Kind: RequestErrorHTTP, StatusCode: 503, Body: "busy"}.Error())
	assert.Equal(t, "request failed: refused",
		RequestError{Kind: RequestErrorNetwork, Cause: errors.New("refused")}.Error())
}

func TestValidationError_Is(t *testing.T) {
	err := ValidationError{Field: "passengerEmail", Reason: "must be a valid email address"}

	// Zero fields in the target act as wildcards.
	assert.ErrorIs(t, err, ValidationError{})
	assert.ErrorIs(t, err, ValidationError{Field: "passengerEmail"})
	assert.NotErrorIs(t, err, ValidationError{Field: "seconds"})
}

func TestIsHelpers(t *testing.T) {
	reqErr := fmt.Errorf("search flights: %w", RequestError{Kind: RequestErrorNetwork})
	valErr := fmt.Errorf("submit: %w", ValidationError{Field: "date"})

	assert.True(t, IsRequestError(reqErr))
	assert.False(t, IsRequestError(valErr))
	assert.True(t, IsValidationError(valErr))
	assert.False(t, IsValidationError(reqErr))
}

func TestBusinessError(t *testing.T) {
	err := BusinessError{Message: "no seats available on flight SK101", StatusCode: 400}

	assert.Equal(t, "no seats available on flight SK101", err.Error())
	assert.ErrorIs(t, err, BusinessError{})
	assert.NotErrorIs(t, err, BusinessError{Message: "other"})
}
