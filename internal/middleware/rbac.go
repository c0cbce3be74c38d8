package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// RequireEmailParam ensures the path parameter names the authenticated caller.
// Usage: route(..., JWT(...), RequireEmailParam("email", log))
func RequireEmailParam(param string, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerEmail(c)
			if caller == "" {
				return httpx.Error(c, log, apperr.Unauthorized("unauthorized access"))
			}
			if !strings.EqualFold(strings.TrimSpace(c.Param(param)), caller) {
				return httpx.Error(c, log, apperr.Forbidden("forbidden access"))
			}
			return next(c)
		}
	}
}
