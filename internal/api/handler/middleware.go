package handler

import (
	"errors"

	"finicky/internal/interfaces"
	"finicky/internal/pkg/limiter"
	"finicky/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
)

// RateLimit throttles per client IP. A limiter backend failure lets the request through.
func RateLimit(l interfaces.Limiter, limit redis_rate.Limit) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := services.LimitKeyClient(c.Path(), c.RealIP())
			err := l.Allow(c.Request().Context(), key, limit)
			if errors.Is(err, limiter.ErrRateLimited) {
				return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.RateLimiting))
			}
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
			}

			return next(c)
		}
	}
}

// wrapServiceError tags service errors with the kind the client should see.
// Malformed ids and expired sessions get different kinds so clients can tell
// "fix the request" from "start a new session".
func wrapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSession), errors.Is(err, services.ErrInvalidEntry):
		return errorx.Wrap(err, errorx.Invalid)
	case errors.Is(err, services.ErrSessionExpired):
		return errorx.Wrap(err, errorx.Validation)
	case errors.Is(err, limiter.ErrRateLimited):
		return errorx.Wrap(err, errorx.RateLimiting)
	default:
		return errorx.Wrap(err, errorx.Service)
	}
}
