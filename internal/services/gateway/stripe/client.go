package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventify/internal/services/gateway"
)

type ClientConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to the Checkout Sessions REST API.
type Client struct {
	// baseURL is the API root, e.g. https://api.stripe.com.
	baseURL string

	// secretKey authenticates every call as a bearer token.
	secretKey string

	hc *http.Client
}

func NewClient(c *ClientConfig) *Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(c.BaseURL, "/"),
		secretKey: c.SecretKey,
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string { return "stripe" }

// CreateCheckoutSession creates a one-item payment-mode session and returns
// its hosted URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, r *gateway.CheckoutRequest) (*gateway.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", r.SuccessURL)
	form.Set("cancel_url", r.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", r.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(r.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", r.ProductName)
	if r.ReferenceID != "" {
		form.Set("client_reference_id", r.ReferenceID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe: http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe: http.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("stripe: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var reply struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &reply)
		return nil, fmt.Errorf("stripe: status %d: %s: %s", resp.StatusCode, reply.Error.Type, reply.Error.Message)
	}

	var reply struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("stripe: json.Unmarshal: %w", err)
	}
	if reply.URL == "" {
		return nil, fmt.Errorf("stripe: session %q has no url", reply.ID)
	}

	return &gateway.CheckoutSession{ID: reply.ID, URL: reply.URL}, nil
}
