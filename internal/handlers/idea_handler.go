package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// IdeaHandler serves saved AI content idea endpoints
type IdeaHandler struct {
	ideas     repository.IdeaRepository
	analytics services.AnalyticsService
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideas repository.IdeaRepository, analytics services.AnalyticsService) *IdeaHandler {
	return &IdeaHandler{
		ideas:     ideas,
		analytics: analytics,
	}
}

// ListIdeas returns the tenant's saved ideas
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	filters := repository.IdeaFilters{
		Platform: queryString(c, "platform"),
		IdeaType: queryString(c, "idea_type"),
		Used:     queryBool(c, "used"),
	}
	ideas, err := h.ideas.List(c.Request.Context(), tenantID, filters, queryLimit(c))
	if err != nil {
		HandleServiceError(c, "idea", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Ideas retrieved", ideas)
}

// GetIdea returns one owned idea
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid idea id", nil)
		return
	}

	idea, err := h.ideas.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "idea", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Idea retrieved", idea)
}

// CreateIdeaRequest carries the fields accepted when saving an idea manually
type CreateIdeaRequest struct {
	Platform *string `json:"platform,omitempty"`
	IdeaType string  `json:"idea_type" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	Tone     *string `json:"tone,omitempty"`
}

// CreateIdea saves an idea without going through the provider
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if !models.ValidIdeaType(req.IdeaType) {
		ErrorResponse(c, http.StatusBadRequest, "Unknown idea type: "+req.IdeaType, nil)
		return
	}

	idea := &models.AIContentIdea{
		Platform: req.Platform,
		IdeaType: req.IdeaType,
		Title:    req.Title,
		Content:  req.Content,
		Tone:     req.Tone,
	}
	if err := h.ideas.Create(c.Request.Context(), tenantID, idea); err != nil {
		HandleServiceError(c, "idea", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Idea saved", idea)
}

// UpdateIdeaRequest carries the optional fields of a partial idea update
type UpdateIdeaRequest struct {
	Platform *string `json:"platform,omitempty"`
	IdeaType *string `json:"idea_type,omitempty"`
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Tone     *string `json:"tone,omitempty"`
	Used     *bool   `json:"used,omitempty"`
}

// UpdateIdea applies a partial update, typically marking an idea used
func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid idea id", nil)
		return
	}

	var req UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if req.IdeaType != nil && !models.ValidIdeaType(*req.IdeaType) {
		ErrorResponse(c, http.StatusBadRequest, "Unknown idea type: "+*req.IdeaType, nil)
		return
	}

	idea, err := h.ideas.Update(c.Request.Context(), tenantID, id, repository.IdeaPatch{
		Platform: req.Platform,
		IdeaType: req.IdeaType,
		Title:    req.Title,
		Content:  req.Content,
		Tone:     req.Tone,
		Used:     req.Used,
	})
	if err != nil {
		HandleServiceError(c, "idea", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Idea updated", idea)
}

// DeleteIdea removes a saved idea
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid idea id", nil)
		return
	}

	if err := h.ideas.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "idea", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Idea deleted", nil)
}
