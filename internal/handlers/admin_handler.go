package handlers

import (
	"context"
	"net/http"

	"eventify/internal/services"
	"eventify/security"

	"github.com/labstack/echo/v5"
)

// AdminHandler exposes the approval queues. Any signed-in user may review.
type AdminHandler struct {
	approvals *services.ApprovalService
}

func NewAdminHandler(approvals *services.ApprovalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

func (h *AdminHandler) PendingColleges(c echo.Context) error {
	colleges, err := h.approvals.ListPendingColleges(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, colleges)
}

func (h *AdminHandler) PendingEvents(c echo.Context) error {
	events, err := h.approvals.ListPendingEvents(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *AdminHandler) PendingChallenges(c echo.Context) error {
	challenges, err := h.approvals.ListPendingChallenges(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, challenges)
}

func (h *AdminHandler) ApproveCollege(c echo.Context) error {
	return h.approve(c, h.approvals.ApproveCollege)
}

func (h *AdminHandler) ApproveEvent(c echo.Context) error {
	return h.approve(c, h.approvals.ApproveEvent)
}

func (h *AdminHandler) ApproveChallenge(c echo.Context) error {
	return h.approve(c, h.approvals.ApproveChallenge)
}

func (h *AdminHandler) approve(c echo.Context, fn func(ctx context.Context, reviewerID, id int64) error) error {
	reviewerID, err := security.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := fn(c.Request().Context(), reviewerID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
