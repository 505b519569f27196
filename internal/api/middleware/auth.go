package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// TokenVerifier is the slice of the auth service the middleware needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*ports.Identity, error)
}

// Auth extracts the bearer token, verifies it through the auth service and
// injects the authenticated identity into the request context. Requests
// without a valid token fail closed.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			ident, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set("identity", ident)
			c.Set("role", ident.Role)

			return next(c)
		}
	}
}
