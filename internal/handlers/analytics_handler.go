package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/services"
)

// AnalyticsHandler serves dashboard and analytics endpoints
type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func seriesQuery(c *gin.Context) services.SeriesQuery {
	return services.SeriesQuery{
		AccountID: queryInt64(c, "account_id"),
		Platform:  queryString(c, "platform"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Limit:     queryLimit(c),
	}
}

// Dashboard returns the tenant summary
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	summary, err := h.analytics.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		HandleServiceError(c, "dashboard", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Dashboard retrieved", summary)
}

// MetricSeries returns metric rows for charting
func (h *AnalyticsHandler) MetricSeries(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	points, err := h.analytics.MetricSeries(c.Request.Context(), tenantID, seriesQuery(c))
	if err != nil {
		HandleServiceError(c, "analytics", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Metric series retrieved", points)
}

// TopPosts returns the tenant's best performing posts
func (h *AnalyticsHandler) TopPosts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	posts, err := h.analytics.TopPosts(c.Request.Context(), tenantID, seriesQuery(c))
	if err != nil {
		HandleServiceError(c, "analytics", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Top posts retrieved", posts)
}

// Totals returns summed engagement figures
func (h *AnalyticsHandler) Totals(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	totals, err := h.analytics.Totals(c.Request.Context(), tenantID, seriesQuery(c))
	if err != nil {
		HandleServiceError(c, "analytics", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Totals retrieved", totals)
}

// AudienceGrowth returns per-account audience snapshot series
func (h *AnalyticsHandler) AudienceGrowth(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	points, err := h.analytics.AudienceGrowth(c.Request.Context(), tenantID, seriesQuery(c))
	if err != nil {
		HandleServiceError(c, "analytics", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Audience growth retrieved", points)
}
