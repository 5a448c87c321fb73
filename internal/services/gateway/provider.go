// Package gateway defines the hosted-checkout collaborator used to take
// payment for events and challenges.
package gateway

import "context"

// CheckoutRequest describes a single line item checkout.
type CheckoutRequest struct {
	Currency    string
	UnitAmount  int64 // smallest currency unit
	ProductName string
	SuccessURL  string
	CancelURL   string
	ReferenceID string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Provider interface {
	Name() string

	// CreateCheckoutSession asks the processor for a hosted checkout page.
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
}
