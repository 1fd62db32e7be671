package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// MetricHandler serves post metric endpoints
type MetricHandler struct {
	metrics   repository.MetricRepository
	analytics services.AnalyticsService
}

// NewMetricHandler creates a new metric handler
func NewMetricHandler(metrics repository.MetricRepository, analytics services.AnalyticsService) *MetricHandler {
	return &MetricHandler{
		metrics:   metrics,
		analytics: analytics,
	}
}

// ListMetrics returns metrics for the tenant's posts
func (h *MetricHandler) ListMetrics(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	metrics, err := h.metrics.List(c.Request.Context(), tenantID, queryInt64(c, "post_id"), queryLimit(c))
	if err != nil {
		HandleServiceError(c, "metric", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Metrics retrieved", metrics)
}

// GetMetric returns one metric owned through its post
func (h *MetricHandler) GetMetric(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid metric id", nil)
		return
	}

	metric, err := h.metrics.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "metric", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Metric retrieved", metric)
}

// CreateMetricRequest carries the fields accepted when recording a metric
type CreateMetricRequest struct {
	PostID         int64   `json:"post_id" binding:"required"`
	Likes          int     `json:"likes"`
	Comments       int     `json:"comments"`
	Shares         int     `json:"shares"`
	Impressions    int     `json:"impressions"`
	Reach          int     `json:"reach"`
	Clicks         int     `json:"clicks"`
	EngagementRate float64 `json:"engagement_rate"`
}

// CreateMetric records a metric for an owned post
func (h *MetricHandler) CreateMetric(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if !validEngagementRate(req.EngagementRate) {
		HandleServiceError(c, "metric", services.NewValidationError("engagement_rate", "engagement_rate must be between 0 and 100", nil))
		return
	}

	metric := &models.PostMetric{
		PostID:         req.PostID,
		Likes:          req.Likes,
		Comments:       req.Comments,
		Shares:         req.Shares,
		Impressions:    req.Impressions,
		Reach:          req.Reach,
		Clicks:         req.Clicks,
		EngagementRate: req.EngagementRate,
	}
	if err := h.metrics.Create(c.Request.Context(), tenantID, metric); err != nil {
		HandleServiceError(c, "metric", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Metric recorded", metric)
}

// UpdateMetricRequest carries the optional fields of a partial metric update
type UpdateMetricRequest struct {
	Likes          *int     `json:"likes,omitempty"`
	Comments       *int     `json:"comments,omitempty"`
	Shares         *int     `json:"shares,omitempty"`
	Impressions    *int     `json:"impressions,omitempty"`
	Reach          *int     `json:"reach,omitempty"`
	Clicks         *int     `json:"clicks,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

// UpdateMetric applies a partial update to a metric
func (h *MetricHandler) UpdateMetric(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid metric id", nil)
		return
	}

	var req UpdateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if req.EngagementRate != nil && !validEngagementRate(*req.EngagementRate) {
		HandleServiceError(c, "metric", services.NewValidationError("engagement_rate", "engagement_rate must be between 0 and 100", nil))
		return
	}

	metric, err := h.metrics.Update(c.Request.Context(), tenantID, id, repository.MetricPatch{
		Likes:          req.Likes,
		Comments:       req.Comments,
		Shares:         req.Shares,
		Impressions:    req.Impressions,
		Reach:          req.Reach,
		Clicks:         req.Clicks,
		EngagementRate: req.EngagementRate,
	})
	if err != nil {
		HandleServiceError(c, "metric", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Metric updated", metric)
}

// DeleteMetric removes a metric
func (h *MetricHandler) DeleteMetric(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid metric id", nil)
		return
	}

	if err := h.metrics.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "metric", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Metric deleted", nil)
}
