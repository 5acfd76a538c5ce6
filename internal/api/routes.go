package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if handler.telemetry != nil {
		router.GET("/metrics", gin.WrapH(handler.telemetry.Handler()))
	}

	v1 := router.Group("/api/v1")

	// Address classification endpoints
	classify := v1.Group("/classify")
	classify.POST("/address", handler.ClassifyAddress) // POST /api/v1/classify/address

	// Quality scoring endpoints
	quality := v1.Group("/quality")
	quality.POST("/site", handler.ScoreSite)                 // POST /api/v1/quality/site
	quality.POST("/organization", handler.ScoreOrganization) // POST /api/v1/quality/organization
	quality.POST("/batch", handler.ScoreBatch)               // POST /api/v1/quality/batch

	// Completeness analysis endpoints
	analysis := v1.Group("/analysis")
	analysis.GET("/missing-data", handler.MissingData) // GET /api/v1/analysis/missing-data
	analysis.GET("/summary", handler.AnalysisSummary)  // GET /api/v1/analysis/summary

	// Address fix endpoints
	fixes := v1.Group("/fixes")
	fixes.GET("/preview", handler.PreviewFixes) // GET /api/v1/fixes/preview
}
