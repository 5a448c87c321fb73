package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventify/internal/status"

	"github.com/labstack/echo/v5"
)

// ContextUserIDKey holds the authenticated user id (int64) on the echo
// context.
const ContextUserIDKey = "user_id"

// Authenticator resolves a bearer credential to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// RequireAuth rejects requests without a valid bearer credential.
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := auth.Authenticate(c.Request().Context(), BearerToken(c.Request()))
			if err != nil {
				return deny(c, http.StatusUnauthorized, err)
			}
			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// UserID returns the id stored by RequireAuth.
func UserID(c echo.Context) (int64, error) {
	id, ok := c.Get(ContextUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, status.ErrUnauthorized
	}
	return id, nil
}

func deny(c echo.Context, code int, err error) error {
	msg := "Unauthorized"
	if errors.Is(err, status.ErrRateLimited) {
		msg = "Too many requests"
	}
	if !errors.Is(err, status.ErrUnauthorized) && !errors.Is(err, status.ErrRateLimited) {
		slog.Error("Authentication failed", "path", c.Request().URL.Path, "error", err)
		code, msg = http.StatusInternalServerError, "Internal server error"
	}
	return c.JSON(code, map[string]string{
		"error": msg,
		"kind":  status.Kind(err),
	})
}
