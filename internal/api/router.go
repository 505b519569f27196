package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/lumiere-cosmetics/storefront-api/internal/api/handler"
	"github.com/lumiere-cosmetics/storefront-api/internal/api/middleware"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// NewRouter builds the Echo instance with all routes registered. Reads are
// public; catalog mutations run behind the Auth + RequireAdmin guard.
func NewRouter(authService ports.AuthService, productService ports.ProductService, health *handler.HealthHandler, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())

	// HTTP metrics go to a per-router registry so rebuilding the router never
	// double-registers collectors; /metrics also gathers the default registry
	// carrying the custom counters from internal/api/metrics.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: promRegistry,
	}))

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	requireAuth := middleware.Auth(authService)
	requireAdmin := middleware.RequireAdmin()

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify, requireAuth)
	e.POST("/auth/change-password", authHandler.ChangePassword, requireAuth)

	// --- Catalog routes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, requireAuth, requireAdmin)
	e.PUT("/products/:id", productHandler.Update, requireAuth, requireAdmin)
	e.DELETE("/products/:id", productHandler.Delete, requireAuth, requireAdmin)

	// --- Probes ---
	e.GET("/health", health.Check)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, promRegistry},
	}))

	return e
}
