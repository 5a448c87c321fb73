package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventify/monitoring"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const contextRequestIDKey = "request_id"

// RequestLogger tags each request with an id, echoes it back in
// X-Request-ID and logs one line when the request completes.
func RequestLogger(monitor *monitoring.Monitor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(contextRequestIDKey, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			err := next(c)

			code := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					code = he.Code
				} else {
					code = http.StatusInternalServerError
				}
			}
			latency := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			monitor.ObserveRequest(c.Request().Method, route, code, latency)

			attrs := []any{
				"request_id", id,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", code,
				"latency", latency,
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			if code >= http.StatusInternalServerError {
				slog.Error("HTTP request", attrs...)
			} else {
				slog.Info("HTTP request", attrs...)
			}
			return err
		}
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get(contextRequestIDKey).(string)
	return id
}
