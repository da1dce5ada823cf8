// Package api exposes the company search engine over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corpindex/company-search/services"
)

const maxRequestBodySize = 10 << 20 // 10 MB

// API holds dependencies for the HTTP handlers.
type API struct {
	engine services.Engine
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.Engine) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all routes of the company search service.
func SetupRoutes(router *gin.Engine, engine services.Engine) {
	apiHandler := NewAPI(engine)

	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(CORSMiddleware())
	router.Use(EngineAvailabilityMiddleware(engine))

	router.GET("/health", apiHandler.HealthCheckHandler)

	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)
	}

	companyRoutes := router.Group("/api/companies")
	{
		companyRoutes.GET("", apiHandler.SearchCompaniesHandler)
		companyRoutes.POST("", apiHandler.AddCompaniesHandler)
		companyRoutes.PATCH("", apiHandler.UpdateCompaniesHandler)
		companyRoutes.GET("/count", apiHandler.CountCompaniesHandler)
		companyRoutes.POST("/bulk-delete", apiHandler.BulkDeleteCompaniesHandler)
		companyRoutes.POST("/multi-search", apiHandler.MultiSearchHandler)
		companyRoutes.GET("/:companyId", apiHandler.GetCompanyHandler)
		companyRoutes.PATCH("/:companyId", apiHandler.UpdateCompanyHandler)
		companyRoutes.DELETE("/:companyId", apiHandler.DeleteCompanyHandler)
	}

	router.POST("/api/persist", apiHandler.PersistHandler)
}

// HealthCheckHandler provides a simple health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "company-search",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	})
}

// PersistHandler snapshots the index to disk as a background job.
func (api *API) PersistHandler(c *gin.Context) {
	jobID, err := api.engine.PersistAsync()
	if err != nil {
		SendJobExecutionError(c, "persist", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

// CountCompaniesHandler returns the number of indexed companies.
func (api *API) CountCompaniesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": api.engine.Count()})
}

func parseCompanyID(c *gin.Context) (int64, bool) {
	raw := c.Param("companyId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Company ID must be a positive integer, got '"+raw+"'")
		return 0, false
	}
	return id, true
}
