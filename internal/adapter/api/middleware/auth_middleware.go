package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies HS256 bearer tokens carrying a wallet claim.
// Token issuance lives in the signature-auth service; this side only
// verifies.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
	}
}

// Authenticate rejects requests without a valid token and stores the
// lower-cased wallet identity on the echo context under "wallet".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		wallet, err := m.walletFromHeader(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		c.Set("wallet", wallet)
		return next(c)
	}
}

// Optional resolves the wallet when a valid token is present and
// continues anonymously otherwise. Used by read endpoints that enrich
// for a known viewer.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if wallet, err := m.walletFromHeader(c); err == nil {
			c.Set("wallet", wallet)
		}
		return next(c)
	}
}

func (m *AuthMiddleware) walletFromHeader(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("Authorization header is required")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("Invalid authorization format")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("Invalid or expired token")
	}

	wallet, ok := claims["wallet"].(string)
	if !ok || wallet == "" {
		return "", fmt.Errorf("Token carries no wallet claim")
	}
	return strings.ToLower(wallet), nil
}

// Wallet reads the authenticated wallet off the context, empty when the
// request is anonymous.
func Wallet(c echo.Context) string {
	if wallet, ok := c.Get("wallet").(string); ok {
		return wallet
	}
	return ""
}
