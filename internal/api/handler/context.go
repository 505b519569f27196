package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; a handler registered behind Auth but
// called without it is a wiring bug, rejected with 401 rather than a panic.
func ctxIdentity(c echo.Context) (*ports.Identity, error) {
	ident, ok := c.Get("identity").(*ports.Identity)
	if !ok || ident == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ident, nil
}
