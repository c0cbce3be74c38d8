package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

const callerEmailKey = "caller_email"

// TokenParser verifies a token and returns its email claim.
type TokenParser interface {
	Parse(token string) (string, error)
}

// JWT authenticates the request from the named cookie or an Authorization:
// Bearer header and stores the caller's email on the context. A cookie that
// fails to verify does not shadow a valid header.
func JWT(parser TokenParser, cookieName string, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokens := tokensFromRequest(c, cookieName)
			if len(tokens) == 0 {
				return httpx.Error(c, log, apperr.Unauthorized("unauthorized access"))
			}
			var email string
			var err error
			for _, token := range tokens {
				if email, err = parser.Parse(token); err == nil {
					break
				}
			}
			if err != nil {
				log.Debug("token rejected", "path", c.Path(), "error", err)
				return httpx.Error(c, log, apperr.Unauthorized("unauthorized access"))
			}
			c.Set(callerEmailKey, strings.ToLower(email))
			return next(c)
		}
	}
}

// tokensFromRequest returns the cookie token then the bearer token, skipping
// whichever is absent.
func tokensFromRequest(c echo.Context, cookieName string) []string {
	var tokens []string
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		tokens = append(tokens, cookie.Value)
	}
	const prefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		if token := strings.TrimSpace(header[len(prefix):]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// CallerEmail returns the email set by JWT, or "" on unauthenticated routes.
func CallerEmail(c echo.Context) string {
	email, _ := c.Get(callerEmailKey).(string)
	return email
}
