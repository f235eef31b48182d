package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/farruhbek/business_accounting_app/internal/core/services"
	"github.com/farruhbek/business_accounting_app/internal/middleware"
	"github.com/farruhbek/business_accounting_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, container *services.Container) {
	registerValidations()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, container.User)

	// Everything under /api/v1 requires a valid token
	setupAPIV1Routes(r, cfg, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, container *services.Container) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerEntryRoutes(v1, container.Ledger)
	registerAccountRoutes(v1, container.Account)
	registerExchangeRateRoutes(v1, container.ExchangeRate, container.Converter)
	registerUserRoutes(v1, container.User)
	registerSectionRoutes(v1, container.Section)
	registerInventoryRoutes(v1, container.Inventory)
}
