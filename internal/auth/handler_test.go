package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

func newTestServer(secure bool) (*echo.Echo, *Issuer) {
	e := echo.New()
	e.Validator = httpx.NewValidator()
	issuer := NewIssuer("secret", 365*24*time.Hour)
	NewHandler(issuer, CookieOptions{Name: "token", Secure: secure}, logger.Nop()).Register(e)
	return e, issuer
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIssueTokenSetsCookie(t *testing.T) {
	e, issuer := newTestServer(false)

	rec := postJSON(e, "/jwt", `{"email":"Seller@Example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), cookie.Expires, time.Minute)

	email, err := issuer.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", email)
}

func TestIssueTokenSecureCookie(t *testing.T) {
	e, _ := newTestServer(true)

	rec := postJSON(e, "/jwt", `{"email":"a@b.io"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestIssueTokenValidation(t *testing.T) {
	e, _ := newTestServer(false)

	rec := postJSON(e, "/jwt", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"validation"`)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	e, _ := newTestServer(false)

	rec := postJSON(e, "/logout", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
