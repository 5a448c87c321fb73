package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"duplicate email", ErrDuplicateEmail, "duplicate_email"},
		{"wrapped not found", fmt.Errorf("event 7: %w", ErrNotFound), "not_found"},
		{"duplicate username is a validation error", ErrDuplicateUsername, "validation_error"},
		{"validation", fmt.Errorf("%w: event_id or challenge_id required", ErrValidation), "validation_error"},
		{"invalid credentials", ErrInvalidCredentials, "invalid_credentials"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"payment", fmt.Errorf("stripe: %w", ErrPaymentProvider), "payment_provider_error"},
		{"rate limited", ErrRateLimited, "rate_limited"},
		{"unknown", errors.New("disk on fire"), "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Kind(tt.err))
		})
	}
}
