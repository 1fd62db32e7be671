package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// HashtagHandler serves hashtag group endpoints
type HashtagHandler struct {
	hashtags  repository.HashtagRepository
	analytics services.AnalyticsService
}

// NewHashtagHandler creates a new hashtag handler
func NewHashtagHandler(hashtags repository.HashtagRepository, analytics services.AnalyticsService) *HashtagHandler {
	return &HashtagHandler{
		hashtags:  hashtags,
		analytics: analytics,
	}
}

// ListGroups returns the tenant's hashtag groups
func (h *HashtagHandler) ListGroups(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	groups, err := h.hashtags.List(c.Request.Context(), tenantID, queryString(c, "category"), queryLimit(c))
	if err != nil {
		HandleServiceError(c, "hashtag group", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Hashtag groups retrieved", groups)
}

// GetGroup returns one owned hashtag group
func (h *HashtagHandler) GetGroup(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid group id", nil)
		return
	}

	group, err := h.hashtags.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "hashtag group", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Hashtag group retrieved", group)
}

// CreateGroupRequest carries the fields accepted when creating a group
type CreateGroupRequest struct {
	Name     string   `json:"name" binding:"required"`
	Hashtags []string `json:"hashtags" binding:"required"`
	Category *string  `json:"category,omitempty"`
	AvgReach int      `json:"avg_reach"`
}

// CreateGroup creates a hashtag group
func (h *HashtagHandler) CreateGroup(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		ErrorResponse(c, http.StatusBadRequest, "name must not be empty", nil)
		return
	}
	if len(req.Hashtags) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "hashtags must not be empty", nil)
		return
	}

	raw, err := models.JSONStringList(req.Hashtags)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "hashtags must be a list of strings", nil)
		return
	}
	group := &models.HashtagGroup{
		Name:     req.Name,
		Hashtags: raw,
		Category: req.Category,
		AvgReach: req.AvgReach,
	}
	if err := h.hashtags.Create(c.Request.Context(), tenantID, group); err != nil {
		HandleServiceError(c, "hashtag group", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Hashtag group created", group)
}

// UpdateGroupRequest carries the optional fields of a partial group update
type UpdateGroupRequest struct {
	Name       *string   `json:"name,omitempty"`
	Hashtags   *[]string `json:"hashtags,omitempty"`
	Category   *string   `json:"category,omitempty"`
	AvgReach   *int      `json:"avg_reach,omitempty"`
	UsageCount *int      `json:"usage_count,omitempty"`
}

// UpdateGroup applies a partial update to a hashtag group
func (h *HashtagHandler) UpdateGroup(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid group id", nil)
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if req.Hashtags != nil && len(*req.Hashtags) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "hashtags must not be empty", nil)
		return
	}

	group, err := h.hashtags.Update(c.Request.Context(), tenantID, id, repository.HashtagPatch{
		Name:       req.Name,
		Hashtags:   req.Hashtags,
		Category:   req.Category,
		AvgReach:   req.AvgReach,
		UsageCount: req.UsageCount,
	})
	if err != nil {
		HandleServiceError(c, "hashtag group", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Hashtag group updated", group)
}

// DeleteGroup removes a hashtag group
func (h *HashtagHandler) DeleteGroup(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid group id", nil)
		return
	}

	if err := h.hashtags.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "hashtag group", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Hashtag group deleted", nil)
}
