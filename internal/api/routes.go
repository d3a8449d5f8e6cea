package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openjus/processo-engine/internal/cache"
	"github.com/openjus/processo-engine/internal/resolver"
	"github.com/openjus/processo-engine/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, cache cache.Cache, resolver *resolver.Resolver, logger *logger.Logger) {
	h := NewHandlers(db, cache, resolver, logger)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// The core operation
		api.POST("/lookup", h.Lookup)

		// Registry listing
		api.GET("/tribunals", h.ListTribunals)

		// Audit history
		api.GET("/queries", h.ListQueries)

		// Cache stats
		api.GET("/cache/stats", h.CacheStats)
	}
}
