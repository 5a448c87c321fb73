package handlers

import (
	"net/http"

	"eventify/internal/services"
	"eventify/models"
	"eventify/security"

	"github.com/labstack/echo/v5"
)

type RegistrationHandler struct {
	registrations *services.RegistrationService
}

func NewRegistrationHandler(registrations *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register records a completed registration. The client calls it after the
// checkout redirect; nothing here checks the payment.
func (h *RegistrationHandler) Register(c echo.Context) error {
	userID, err := security.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ItemRef
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	reg, err := h.registrations.Register(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"registration": reg,
	})
}

func (h *RegistrationHandler) ListMine(c echo.Context) error {
	userID, err := security.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	regs, err := h.registrations.ListMyRegistrations(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, regs)
}
