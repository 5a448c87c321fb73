package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor()

	before := testutil.ToFloat64(registrations.WithLabelValues("event"))
	m.TrackRegistration("event")
	m.TrackRegistration("event")
	assert.Equal(t, before+2, testutil.ToFloat64(registrations.WithLabelValues("event")))

	before = testutil.ToFloat64(paymentSessions.WithLabelValues("stub", "error"))
	m.TrackPaymentSession("stub", "error")
	assert.Equal(t, before+1, testutil.ToFloat64(paymentSessions.WithLabelValues("stub", "error")))

	m.SetBreakerState("stripe", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(breakerState.WithLabelValues("stripe")))
}

func TestMonitor_ObserveRequest(t *testing.T) {
	m := NewMonitor()
	m.ObserveRequest("GET", "/api/events", 200, 15*time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(requestDuration), 1)
}

func TestMonitor_NilIsNoop(t *testing.T) {
	var m *Monitor

	assert.NotPanics(t, func() {
		m.TrackRegistration("challenge")
		m.TrackApproval("college")
		m.TrackAuth("login", "ok")
		m.TrackNotification("sent")
		m.SetBreakerState("x", 1)
		m.ObserveRequest("POST", "/", 500, time.Second)
	})
}
