package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		countries := v1.Group("/countries/:code")
		{
			countries.GET("", handler.GetCountry)                       // GET /api/v1/countries/:code
			countries.GET("/suppliers", handler.GetSuppliers)           // GET /api/v1/countries/:code/suppliers
			countries.GET("/infrastructure", handler.GetInfrastructure) // GET /api/v1/countries/:code/infrastructure
			countries.GET("/pricing", handler.GetPricing)               // GET /api/v1/countries/:code/pricing
			countries.GET("/government", handler.GetGovernment)         // GET /api/v1/countries/:code/government
			countries.GET("/stats", handler.GetStats)                   // GET /api/v1/countries/:code/stats
			countries.POST("/reload", handler.Reload)                   // POST /api/v1/countries/:code/reload
		}
	}
}
