package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(next)(c))
	return rec
}

func TestJWTAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, JWTAuth(), "", ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest(t, JWTAuth(), "Token abc", ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := doRequest(t, JWTAuth(), "Bearer not-a-token", ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token populates context", func(t *testing.T) {
		token, err := utils.GenerateToken(7, "carol", true)
		require.NoError(t, err)

		next := func(c echo.Context) error {
			assert.Equal(t, 7, c.Get("user_id"))
			assert.Equal(t, "carol", c.Get("username"))
			assert.Equal(t, true, c.Get("is_admin"))
			return c.NoContent(http.StatusOK)
		}

		rec := doRequest(t, JWTAuth(), "Bearer "+token, next)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("non-admin is rejected", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("is_admin", false)

		require.NoError(t, AdminOnly()(ok)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("is_admin", true)

		require.NoError(t, AdminOnly()(ok)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
