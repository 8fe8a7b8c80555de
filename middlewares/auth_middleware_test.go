package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uint(1),
		"role": "admin",
		"name": "Admin",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func doRequest(authHeader string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAuth(t *testing.T) {
	mw := RequireAuth(testSecret)

	t.Run("valid token", func(t *testing.T) {
		tok := signToken(t, testSecret, time.Hour)
		rec := doRequest("Bearer "+tok, mw)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest("", mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest("Token abc", mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, "other-secret", time.Hour)
		rec := doRequest("Bearer "+tok, mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signToken(t, testSecret, -time.Hour)
		rec := doRequest("Bearer "+tok, mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	auth := RequireAuth(testSecret)
	tok := signToken(t, testSecret, time.Hour) // role=admin

	t.Run("allowed", func(t *testing.T) {
		rec := doRequest("Bearer "+tok, auth, RequireRole("admin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		rec := doRequest("Bearer "+tok, auth, RequireRole("staff"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
