package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"eventify/config"
	"eventify/internal/services"
	"eventify/internal/services/gateway/stub"
	"eventify/internal/testutil"
	"eventify/security"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e       *echo.Echo
	fixture *testutil.Fixture
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s, _ := testutil.NewStore(t)
	f := testutil.Seed(t, s)

	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	paymentCfg := config.PaymentConfig{
		Currency:   "inr",
		SuccessURL: "http://localhost:3000/registration-success/{id}?type={type}",
		CancelURL:  "http://localhost:3000/{type}s/{id}",
	}

	e := NewRouter(Dependencies{
		Store:         s,
		Auth:          services.NewAuthService(s, tokens, nil),
		Catalog:       services.NewCatalogService(s),
		Approvals:     services.NewApprovalService(s, nil),
		Payments:      services.NewPaymentService(s, stub.New("http://localhost:8080/stub-checkout"), paymentCfg, nil),
		Registrations: services.NewRegistrationService(s, nil, nil),
		StubCheckout:  true,
	})
	return &testServer{e: e, fixture: f}
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user through the API and returns the access token.
func (ts *testServer) signUp(t *testing.T, email string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAuthRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"email":"Asha@Example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	registered := decode[map[string]any](t, rec)
	assert.NotEmpty(t, registered["access_token"])
	user := registered["user"].(map[string]any)
	assert.Equal(t, "asha@example.com", user["email"])
	assert.Equal(t, "asha", user["username"])
	assert.NotContains(t, user, "password_hash")

	rec = ts.do(t, http.MethodPost, "/api/auth/register", `{"email":"asha@example.com","password":"other123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_email", decode[map[string]string](t, rec)["kind"])

	rec = ts.do(t, http.MethodPost, "/api/auth/login", `{"email":"asha@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decode[map[string]string](t, rec)["kind"])

	rec = ts.do(t, http.MethodPost, "/api/auth/login", `{"email":"asha@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[map[string]any](t, rec)["access_token"].(string)

	rec = ts.do(t, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asha@example.com", decode[map[string]any](t, rec)["email"])

	rec = ts.do(t, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRoutes_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"bad email", `{"email":"nope","password":"secret123"}`},
		{"short password", `{"email":"a@b.co","password":"123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_error", decode[map[string]string](t, rec)["kind"])
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t)
	f := ts.fixture

	rec := ts.do(t, http.MethodGet, "/api/colleges", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	colleges := decode[[]map[string]any](t, rec)
	require.Len(t, colleges, 1)
	assert.Equal(t, f.College.Name, colleges[0]["name"])

	rec = ts.do(t, http.MethodGet, "/api/events", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]map[string]any](t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, 499.0, events[0]["price"])
	assert.Equal(t, f.College.Name, events[0]["college_name"])

	rec = ts.do(t, http.MethodGet, "/api/challenges", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	challenges := decode[[]map[string]any](t, rec)
	require.Len(t, challenges, 1)
	assert.Equal(t, []any{"Teams of up to 4", "Original work only"}, challenges[0]["rules"])

	rec = ts.do(t, http.MethodGet, "/api/colleges/1/events", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/api/events?college_id=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/api/events?college_id=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogRoutes_NotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/colleges/999",
		"/api/colleges/abc",
		"/api/colleges/0",
		"/api/colleges/999/events",
		"/api/events/999",
		"/api/challenges/-1",
	} {
		t.Run(path, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, path, "", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "not_found", decode[map[string]string](t, rec)["kind"])
		})
	}
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)
	f := ts.fixture

	rec := ts.do(t, http.MethodGet, "/api/admin/colleges/pending", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := ts.signUp(t, "reviewer@example.com")

	rec = ts.do(t, http.MethodGet, "/api/admin/colleges/pending", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decode[[]map[string]any](t, rec)
	require.Len(t, pending, 1)
	assert.Equal(t, "New College", pending[0]["name"])

	rec = ts.do(t, http.MethodPost, "/api/admin/colleges/"+itoa(f.PendingCollege.ID)+"/approve", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rec))

	rec = ts.do(t, http.MethodGet, "/api/colleges", "", "")
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = ts.do(t, http.MethodGet, "/api/admin/events/pending", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = ts.do(t, http.MethodPost, "/api/admin/challenges/999/approve", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/admin/challenges/pending", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = ts.do(t, http.MethodPost, "/api/admin/challenges/"+itoa(f.PendingChal.ID)+"/approve", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPaymentRoute(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "payer@example.com")

	rec := ts.do(t, http.MethodPost, "/api/payments/create-session", `{"event_id":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/payments/create-session", `{"event_id":1}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	url := decode[map[string]string](t, rec)["url"]
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/stub-checkout?"), url)
	assert.Contains(t, url, "amount=49900")

	rec = ts.do(t, http.MethodPost, "/api/payments/create-session", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/payments/create-session", `{"challenge_id":999}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStubCheckout_RedirectsToSuccessURL(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/stub-checkout?session=cs_stub_1&success_url=http%3A%2F%2Flocalhost%3A3000%2Fok", "", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "http://localhost:3000/ok", rec.Header().Get("Location"))

	rec = ts.do(t, http.MethodGet, "/stub-checkout", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/stub-checkout?success_url=https%3A%2F%2Fevil.example%2Fphish", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRegistrationRoutes(t *testing.T) {
	ts := newTestServer(t)
	f := ts.fixture
	token := ts.signUp(t, "student@example.com")

	rec := ts.do(t, http.MethodPost, "/api/register-event", `{"event_id":`+itoa(f.Event.ID)+`}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "completed", body["registration"].(map[string]any)["payment_status"])

	rec = ts.do(t, http.MethodPost, "/api/register-event", `{"challenge_id":`+itoa(f.Challenge.ID)+`}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/events/"+itoa(f.Event.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, rec)["participants"])

	rec = ts.do(t, http.MethodGet, "/api/registrations", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	regs := decode[[]map[string]any](t, rec)
	require.Len(t, regs, 2)
	assert.Equal(t, "Code Sprint", regs[0]["item_title"])
	assert.Equal(t, "Tech Summit", regs[1]["item_title"])

	rec = ts.do(t, http.MethodPost, "/api/register-event", `{"event_id":1,"challenge_id":1}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRateLimit_KeysOnPeerAddress(t *testing.T) {
	s, _ := testutil.NewStore(t)
	redisClient, redisMock := redismock.NewClientMock()

	e := NewRouter(Dependencies{
		Store:       s,
		Auth:        services.NewAuthService(s, security.NewTokenIssuer("test-secret", time.Hour), nil),
		RateLimiter: security.NewRateLimiter(redisClient, 1, time.Minute),
	})

	key := "ratelimit:auth:198.51.100.9"
	redisMock.ExpectIncr(key).SetVal(1)
	redisMock.ExpectExpire(key, time.Minute).SetVal(true)
	redisMock.ExpectIncr(key).SetVal(2)
	redisMock.ExpectIncr(key).SetVal(3)

	var codes []int
	for _, xff := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"nobody@example.com","password":"secret123"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		req.Header.Set(echo.HeaderXRealIP, xff)
		req.RemoteAddr = "198.51.100.9:4000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHealthAndRequestID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}, decode[map[string]string](t, rec))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec = httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, respondError(c, errors.New("disk I/O error at /var/lib/eventify.db")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"error": "Internal server error", "kind": "internal_error"}, decode[map[string]string](t, rec))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
