package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventify/internal/services"
	"eventify/internal/status"

	"github.com/labstack/echo/v5"
)

// CatalogHandler serves the public, approved-only catalog.
type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListColleges(c echo.Context) error {
	colleges, err := h.catalog.ListColleges(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, colleges)
}

func (h *CatalogHandler) GetCollege(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	college, err := h.catalog.GetCollege(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, college)
}

func (h *CatalogHandler) ListCollegeEvents(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	events, err := h.catalog.ListCollegeEvents(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// ListEvents accepts an optional college_id query filter.
func (h *CatalogHandler) ListEvents(c echo.Context) error {
	var collegeID *int64
	if raw := c.QueryParam("college_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: college_id must be an integer", status.ErrValidation))
		}
		collegeID = &id
	}

	events, err := h.catalog.ListEvents(c.Request().Context(), collegeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *CatalogHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.catalog.GetEvent(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *CatalogHandler) ListChallenges(c echo.Context) error {
	challenges, err := h.catalog.ListChallenges(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, challenges)
}

func (h *CatalogHandler) GetChallenge(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	challenge, err := h.catalog.GetChallenge(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, challenge)
}
