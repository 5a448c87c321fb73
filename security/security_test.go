package security

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventify/internal/status"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v5"
	pbsecurity "github.com/pocketbase/pocketbase/tools/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	tokens := NewTokenIssuer(testSecret, time.Hour)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	id, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	tokens := NewTokenIssuer(testSecret, time.Hour)

	expired, err := NewTokenIssuer(testSecret, -time.Minute).Issue(1)
	require.NoError(t, err)

	forged, err := NewTokenIssuer("another-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	wrongType, err := pbsecurity.NewJWT(jwt.MapClaims{"id": "1", "type": "refresh"}, testSecret, time.Hour)
	require.NoError(t, err)

	noSubject, err := pbsecurity.NewJWT(jwt.MapClaims{"type": "auth"}, testSecret, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":      "",
		"garbage":    "not-a-jwt",
		"expired":    expired,
		"forged":     forged,
		"wrong type": wrongType,
		"no subject": noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.ErrorIs(t, err, status.ErrUnauthorized)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	tokens := NewTokenIssuer(testSecret, time.Hour)
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int64{"id": id})
	}, RequireAuth(tokens))

	token, err := tokens.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","kind":"unauthorized"}`, rec.Body.String())
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func TestRequireAuth_InfrastructureErrorIs500(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", mock.Anything, "tok").Return(int64(0), errors.New("database is locked"))

	e := echo.New()
	e.GET("/me", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth(auth))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error","kind":"internal_error"}`, rec.Body.String())
	auth.AssertExpectations(t)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set(echo.HeaderAuthorization, "bearer  abc ")
	assert.Equal(t, "abc", BearerToken(req))

	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	assert.Empty(t, BearerToken(req))
}

func TestRateLimiter_Allow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, time.Minute)
	ctx := context.Background()

	mock.ExpectIncr("k").SetVal(1)
	mock.ExpectExpire("k", time.Minute).SetVal(true)
	mock.ExpectIncr("k").SetVal(2)
	mock.ExpectIncr("k").SetVal(3)

	for _, want := range []bool{true, true, false} {
		ok, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 1, time.Minute)

	mock.ExpectIncr("k").SetErr(errors.New("redis down"))

	ok, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, ok)
}

func newLimitedEcho(limiter *RateLimiter, trusted []*net.IPNet) *echo.Echo {
	e := echo.New()
	e.IPExtractor = ClientIPExtractor(trusted)
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, limiter.AuthRateLimit())
	return e
}

func postLogin(e *echo.Echo, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
		req.Header.Set(echo.HeaderXRealIP, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimit_Middleware(t *testing.T) {
	db, mock := redismock.NewClientMock()
	e := newLimitedEcho(NewRateLimiter(db, 1, time.Minute), nil)

	key := "ratelimit:auth:203.0.113.7"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)

	assert.Equal(t, http.StatusNoContent, postLogin(e, "203.0.113.7:4000", "").Code)

	rec := postLogin(e, "203.0.113.7:4000", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"rate_limited"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRateLimit_IgnoresSpoofedForwardingHeaders(t *testing.T) {
	db, mock := redismock.NewClientMock()
	e := newLimitedEcho(NewRateLimiter(db, 1, time.Minute), nil)

	key := "ratelimit:auth:198.51.100.9"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectIncr(key).SetVal(3)

	var codes []int
	for _, xff := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		codes = append(codes, postLogin(e, "198.51.100.9:4000", xff).Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	_, proxies, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)

	db, mock := redismock.NewClientMock()
	e := newLimitedEcho(NewRateLimiter(db, 1, time.Minute), []*net.IPNet{proxies})

	key := "ratelimit:auth:203.0.113.7"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	assert.Equal(t, http.StatusNoContent, postLogin(e, "10.1.2.3:4000", "203.0.113.7").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRateLimit_NilLimiterPassesThrough(t *testing.T) {
	var limiter *RateLimiter
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, limiter.AuthRateLimit())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
