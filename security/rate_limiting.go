package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventify/internal/status"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per client IP kept in Redis.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: int64(limit), window: window}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.redis.Expire(ctx, key, r.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= r.limit, nil
}

// AuthRateLimit guards the credential endpoints. Redis errors let the
// request through.
func (r *RateLimiter) AuthRateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r == nil || r.redis == nil {
				return next(c)
			}

			key := fmt.Sprintf("ratelimit:auth:%s", c.RealIP())
			ok, err := r.Allow(c.Request().Context(), key)
			if err != nil {
				slog.Warn("Rate limiter unavailable", "key", key, "error", err)
			}
			if !ok {
				return deny(c, http.StatusTooManyRequests, status.ErrRateLimited)
			}
			return next(c)
		}
	}
}
