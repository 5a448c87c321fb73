package handlers

import (
	"log/slog"
	"net/http"

	"eventify/internal/store"
	"eventify/utils"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	store *store.Store
	redis *redis.Client
}

// NewHealthHandler takes an optional redis client; nil reports it disabled.
func NewHealthHandler(s *store.Store, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{store: s, redis: redisClient}
}

func (h *HealthHandler) Check(c echo.Context) error {
	code := http.StatusOK
	result := map[string]string{
		"status":   "ok",
		"database": "ok",
		"redis":    "disabled",
	}

	if err := h.store.Ping(c.Request().Context()); err != nil {
		slog.Error("Database health check failed", "error", err)
		code = http.StatusServiceUnavailable
		result["status"], result["database"] = "degraded", "down"
	}

	if h.redis != nil {
		result["redis"] = "ok"
		if err := utils.RedisHealthCheck(h.redis); err != nil {
			slog.Error("Redis health check failed", "error", err)
			code = http.StatusServiceUnavailable
			result["status"], result["redis"] = "degraded", "down"
		}
	}

	return c.JSON(code, result)
}
