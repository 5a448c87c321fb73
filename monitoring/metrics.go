package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventify_registrations_total",
			Help: "Completed registrations per item kind",
		},
		[]string{"kind"},
	)

	paymentSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventify_payment_sessions_total",
			Help: "Checkout session requests per provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	approvals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventify_approvals_total",
			Help: "Approvals per record kind",
		},
		[]string{"kind"},
	)

	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventify_auth_attempts_total",
			Help: "Register and login attempts per outcome",
		},
		[]string{"operation", "outcome"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventify_notifications_total",
			Help: "Realtime notifications per outcome",
		},
		[]string{"outcome"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventify_circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventify_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Monitor records service metrics. A nil *Monitor is valid and records
// nothing.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TrackRegistration(kind string) {
	if m == nil {
		return
	}
	registrations.WithLabelValues(kind).Inc()
}

func (m *Monitor) TrackPaymentSession(provider, outcome string) {
	if m == nil {
		return
	}
	paymentSessions.WithLabelValues(provider, outcome).Inc()
}

func (m *Monitor) TrackApproval(kind string) {
	if m == nil {
		return
	}
	approvals.WithLabelValues(kind).Inc()
}

func (m *Monitor) TrackAuth(operation, outcome string) {
	if m == nil {
		return
	}
	authAttempts.WithLabelValues(operation, outcome).Inc()
}

func (m *Monitor) TrackNotification(outcome string) {
	if m == nil {
		return
	}
	notifications.WithLabelValues(outcome).Inc()
}

func (m *Monitor) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	breakerState.WithLabelValues(name).Set(float64(state))
}

func (m *Monitor) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
