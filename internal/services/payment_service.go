package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"eventify/config"
	"eventify/internal/services/gateway"
	"eventify/internal/services/gateway/stripe"
	"eventify/internal/services/gateway/stub"
	"eventify/internal/status"
	"eventify/internal/store"
	"eventify/models"
	"eventify/monitoring"
	"eventify/utils"
)

// NewPaymentProvider builds the checkout provider named in cfg.
func NewPaymentProvider(cfg config.PaymentConfig) (gateway.Provider, error) {
	switch cfg.Provider {
	case "stripe":
		return stripe.NewClient(&stripe.ClientConfig{
			BaseURL:   cfg.StripeAPIURL,
			SecretKey: cfg.StripeSecretKey,
			Timeout:   cfg.Timeout,
		}), nil
	case "stub":
		return stub.New(cfg.StubBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.Provider)
	}
}

type PaymentService struct {
	store    *store.Store
	provider gateway.Provider
	breaker  *utils.CircuitBreaker
	monitor  *monitoring.Monitor

	currency   string
	successURL string
	cancelURL  string
}

func NewPaymentService(s *store.Store, provider gateway.Provider, cfg config.PaymentConfig, monitor *monitoring.Monitor) *PaymentService {
	breaker := utils.NewCircuitBreaker(provider.Name(),
		utils.WithTrip(5, 0.6),
		utils.WithStateChange(func(name string, from, to utils.State) {
			slog.Warn("Payment circuit breaker changed state", "provider", name, "from", from.String(), "to", to.String())
			monitor.SetBreakerState(name, int(to))
		}),
	)

	return &PaymentService{
		store:      s,
		provider:   provider,
		breaker:    breaker,
		monitor:    monitor,
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// CreatePaymentSession opens a hosted checkout for the referenced item and
// returns its URL. Nothing is written locally.
func (s *PaymentService) CreatePaymentSession(ctx context.Context, userID int64, ref models.ItemRef) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}

	item, err := s.store.FindItem(ctx, ref)
	if err != nil {
		return "", err
	}

	reference, err := utils.GenerateCode(8)
	if err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}

	req := &gateway.CheckoutRequest{
		Currency:    s.currency,
		UnitAmount:  item.MinorUnits(),
		ProductName: item.Title,
		SuccessURL:  expandItemURL(s.successURL, item),
		CancelURL:   expandItemURL(s.cancelURL, item),
		ReferenceID: reference,
	}

	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.provider.CreateCheckoutSession(ctx, req)
	})
	if err != nil {
		slog.Error("s.provider.CreateCheckoutSession()",
			"provider", s.provider.Name(),
			"user_id", userID,
			"kind", item.Kind,
			"item_id", item.ID,
			"reference", reference,
			"error", err,
		)
		s.monitor.TrackPaymentSession(s.provider.Name(), outcome(err))
		return "", fmt.Errorf("%w: %v", status.ErrPaymentProvider, err)
	}

	session := result.(*gateway.CheckoutSession)
	slog.Info("Checkout session created",
		"provider", s.provider.Name(),
		"session_id", session.ID,
		"user_id", userID,
		"kind", item.Kind,
		"item_id", item.ID,
		"amount", req.UnitAmount,
	)
	s.monitor.TrackPaymentSession(s.provider.Name(), "ok")
	return session.URL, nil
}

func outcome(err error) string {
	if errors.Is(err, utils.ErrOpenState) || errors.Is(err, utils.ErrTooManyRequests) {
		return "rejected"
	}
	return "error"
}

// IsReturnURL reports whether target points at the same origin as the
// configured success URL.
func (s *PaymentService) IsReturnURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return false
	}
	allowed, err := url.Parse(expandItemURL(s.successURL, &models.Item{}))
	if err != nil {
		return false
	}
	return u.Scheme == allowed.Scheme && strings.EqualFold(u.Host, allowed.Host)
}

func expandItemURL(tmpl string, item *models.Item) string {
	return strings.NewReplacer(
		"{id}", strconv.FormatInt(item.ID, 10),
		"{type}", string(item.Kind),
	).Replace(tmpl)
}
