package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"eventify/internal/status"

	"github.com/labstack/echo/v5"
)

var kindStatus = map[string]int{
	"duplicate_email":        http.StatusConflict,
	"invalid_credentials":    http.StatusUnauthorized,
	"unauthorized":           http.StatusUnauthorized,
	"not_found":              http.StatusNotFound,
	"payment_provider_error": http.StatusBadGateway,
	"validation_error":       http.StatusBadRequest,
	"rate_limited":           http.StatusTooManyRequests,
	"internal_error":         http.StatusInternalServerError,
}

// respondError is the single place where service errors become HTTP
// responses.
func respondError(c echo.Context, err error) error {
	kind := status.Kind(err)
	code := kindStatus[kind]
	msg := err.Error()

	switch kind {
	case "internal_error":
		slog.Error("Request failed",
			"request_id", requestID(c),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		msg = "Internal server error"
	case "payment_provider_error":
		msg = "Payment provider unavailable"
	}

	return c.JSON(code, map[string]string{
		"error": msg,
		"kind":  kind,
	})
}

func badRequest(c echo.Context, err error) error {
	return respondError(c, fmt.Errorf("%w: invalid request body: %v", status.ErrValidation, err))
}

// pathID reads a positive integer path parameter. Anything else cannot name
// a record.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.PathParam(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", status.ErrNotFound, name, raw)
	}
	return id, nil
}
