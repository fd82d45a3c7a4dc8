package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Uniqueness tests that all sentinel errors are distinct.
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrConfiguration,
		ErrConnectorNotFound,
		ErrUnsupportedOperation,
		ErrValidation,
		ErrUpstream,
		ErrAlreadyRevoked,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_WithWrapping tests error wrapping behavior.
func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: connector %q", ErrConnectorNotFound, "alpha")

	assert.True(t, errors.Is(wrapped, ErrConnectorNotFound))
	assert.Contains(t, wrapped.Error(), "alpha")
}

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  *UpstreamError
		want string
	}{
		{
			name: "status and message",
			err:  &UpstreamError{Provider: "google", StatusCode: 403, Message: "quota exceeded"},
			want: "google: upstream error (status 403): quota exceeded",
		},
		{
			name: "status only",
			err:  &UpstreamError{Provider: "cronofy", StatusCode: 500},
			want: "cronofy: upstream error (status 500)",
		},
		{
			name: "wrapped transport error",
			err:  &UpstreamError{Provider: "cronofy", Err: errors.New("connection reset")},
			want: "cronofy: upstream error: connection reset",
		},
		{
			name: "bare",
			err:  &UpstreamError{Provider: "google"},
			want: "google: upstream error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrUpstream))
			assert.False(t, errors.Is(tt.err, ErrValidation))
		})
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &UpstreamError{Provider: "google", Err: inner}

	assert.True(t, errors.Is(err, inner))
	assert.True(t, errors.Is(err, ErrUpstream))
}
