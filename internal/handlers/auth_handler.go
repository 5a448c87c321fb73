package handlers

import (
	"net/http"

	"eventify/internal/services"
	"eventify/security"

	"github.com/labstack/echo/v5"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req services.RegisterInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	result, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req services.LoginInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	result, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), security.BearerToken(c.Request()))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
