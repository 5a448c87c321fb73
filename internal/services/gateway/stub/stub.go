package stub

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"eventify/internal/services/gateway"
)

// Provider hands out local checkout links without contacting a processor.
type Provider struct {
	baseURL string
}

func New(baseURL string) *Provider {
	return &Provider{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreateCheckoutSession(ctx context.Context, req *gateway.CheckoutRequest) (*gateway.CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := "cs_stub_" + req.ReferenceID
	q := url.Values{}
	q.Set("session", id)
	q.Set("amount", fmt.Sprintf("%d", req.UnitAmount))
	q.Set("currency", req.Currency)
	q.Set("success_url", req.SuccessURL)
	q.Set("cancel_url", req.CancelURL)

	return &gateway.CheckoutSession{
		ID:  id,
		URL: p.baseURL + "?" + q.Encode(),
	}, nil
}
