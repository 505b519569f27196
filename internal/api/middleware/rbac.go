package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
)

// RequireAdmin rejects any authenticated identity that does not carry the
// admin role. It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != domain.RoleAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
