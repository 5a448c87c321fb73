package status

import "errors"

var (
	ErrDuplicateEmail     = errors.New("auth: email already exists")
	ErrDuplicateUsername  = errors.New("auth: username already taken")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnauthorized       = errors.New("auth: unauthorized")
	ErrNotFound           = errors.New("record: not found")
	ErrValidation         = errors.New("request: validation failed")
	ErrPaymentProvider    = errors.New("payment: provider error")
	ErrRateLimited        = errors.New("request: rate limit exceeded")
)

// Kind returns the stable machine-readable name for err's taxonomy entry.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPaymentProvider):
		return "payment_provider_error"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "internal_error"
	}
}
