package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openjus/processo-engine/internal/cache"
	"github.com/openjus/processo-engine/internal/database"
	"github.com/openjus/processo-engine/internal/models"
	"github.com/openjus/processo-engine/internal/resolver"
	"github.com/openjus/processo-engine/internal/tribunal"
	"github.com/openjus/processo-engine/pkg/logger"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db       *gorm.DB
	cache    cache.Cache
	resolver *resolver.Resolver
	logger   *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, cache cache.Cache, resolver *resolver.Resolver, logger *logger.Logger) *Handlers {
	return &Handlers{
		db:       db,
		cache:    cache,
		resolver: resolver,
		logger:   logger,
	}
}

// Lookup handles the core lookup operation
func (h *Handlers) Lookup(c *gin.Context) {
	var query models.LookupQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid lookup query: " + err.Error(),
		})
		return
	}

	actor := c.GetHeader("X-Actor")
	if actor == "" {
		actor = c.ClientIP()
	}

	result, err := h.resolver.Lookup(c.Request.Context(), query, actor)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyTerm) || errors.Is(err, resolver.ErrInvalidMode) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListTribunals returns the full backend registry
func (h *Handlers) ListTribunals(c *gin.Context) {
	entries := tribunal.All()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"total":   len(entries),
	})
}

// ListQueries returns the query-log history, newest first
func (h *Handlers) ListQueries(c *gin.Context) {
	var queries []database.QueryLog

	// Get pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	h.db.Model(&database.QueryLog{}).Count(&total)

	h.db.Offset(offset).Limit(limit).
		Order("query_time DESC").
		Find(&queries)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    queries,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.QueryLog{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	stats := h.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
