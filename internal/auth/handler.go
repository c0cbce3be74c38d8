package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CookieOptions control the token cookie. Secure cookies are sent with
// SameSite=None so a separately hosted client can use them.
type CookieOptions struct {
	Name   string
	Secure bool
}

type Handler struct {
	issuer *Issuer
	cookie CookieOptions
	log    *logger.Logger
}

func NewHandler(issuer *Issuer, cookie CookieOptions, log *logger.Logger) *Handler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &Handler{issuer: issuer, cookie: cookie, log: log}
}

func (h *Handler) Register(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.POST("/jwt", h.IssueToken, m...)
	e.POST("/logout", h.Logout, m...)
}

// ===== Issue token =====
func (h *Handler) IssueToken(c echo.Context) error {
	req := new(TokenRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	signed, exp, err := h.issuer.Issue(email)
	if err != nil {
		return httpx.Error(c, h.log, apperr.Wrap(err, apperr.ErrCodeInternal, "token generation failed"))
	}

	c.SetCookie(h.newCookie(signed, exp))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ===== Logout =====
func (h *Handler) Logout(c echo.Context) error {
	cookie := h.newCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *Handler) newCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if h.cookie.Secure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
