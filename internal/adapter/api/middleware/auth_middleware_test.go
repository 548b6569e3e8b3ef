package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, wallet string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"wallet": wallet})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authorization string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	next := func(c echo.Context) error { return nil }
	return c, mw(next)(c)
}

func TestAuthenticateSetsLowercasedWallet(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	token := signToken(t, testSecret, "0xABCDEF")

	c, err := invoke(t, m.Authenticate, "Bearer "+token)

	require.NoError(t, err)
	assert.Equal(t, "0xabcdef", Wallet(c))
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	_, err := invoke(t, m.Authenticate, "")

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	token := signToken(t, "other-secret", "0xabc")

	_, err := invoke(t, m.Authenticate, "Bearer "+token)

	require.Error(t, err)
}

func TestAuthenticateRejectsBadFormat(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	_, err := invoke(t, m.Authenticate, "Token abc")

	require.Error(t, err)
}

func TestOptionalContinuesAnonymously(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	c, err := invoke(t, m.Optional, "")

	require.NoError(t, err)
	assert.Empty(t, Wallet(c))
}

func TestOptionalResolvesValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	token := signToken(t, testSecret, "0xViewer")

	c, err := invoke(t, m.Optional, "Bearer "+token)

	require.NoError(t, err)
	assert.Equal(t, "0xviewer", Wallet(c))
}
