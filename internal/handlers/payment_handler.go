package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventify/internal/services"
	"eventify/internal/status"
	"eventify/models"
	"eventify/security"

	"github.com/labstack/echo/v5"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateSession answers with the hosted checkout URL the client should
// redirect to.
func (h *PaymentHandler) CreateSession(c echo.Context) error {
	userID, err := security.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ItemRef
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	url, err := h.paymentService.CreatePaymentSession(c.Request().Context(), userID, req)
	if err != nil {
		slog.Error("h.paymentService.CreatePaymentSession()", "request_id", requestID(c), "user_id", userID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// StubCheckout stands in for a hosted checkout page: it approves at once and
// sends the browser on to the success URL, which must share the configured
// success URL's origin.
func (h *PaymentHandler) StubCheckout(c echo.Context) error {
	target := c.QueryParam("success_url")
	if !h.paymentService.IsReturnURL(target) {
		return respondError(c, fmt.Errorf("%w: success_url must point at the configured return host", status.ErrValidation))
	}
	slog.Info("Stub checkout completed", "session", c.QueryParam("session"))
	return c.Redirect(http.StatusSeeOther, target)
}
