package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/health"
	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/services"
)

// AIStudioHandler serves AI-assisted content endpoints
type AIStudioHandler struct {
	studio    services.AIStudioService
	analytics services.AnalyticsService
}

// NewAIStudioHandler creates a new AI studio handler
func NewAIStudioHandler(studio services.AIStudioService, analytics services.AnalyticsService) *AIStudioHandler {
	return &AIStudioHandler{
		studio:    studio,
		analytics: analytics,
	}
}

// Status reports whether the provider is configured
func (h *AIStudioHandler) Status(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "AI studio status", gin.H{
		"enabled": h.studio.Enabled(),
	})
}

// GenerateIdeas asks the provider for content ideas and saves them
func (h *AIStudioHandler) GenerateIdeas(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req services.GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	ideas, err := h.studio.GenerateIdeas(c.Request.Context(), tenantID, &req)
	if err != nil {
		health.RecordAIStudioOperation("generate", false)
		HandleServiceError(c, "idea generation", err)
		return
	}

	health.RecordAIStudioOperation("generate", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Ideas generated", ideas)
}

// WriteCaption drafts a platform-native caption
func (h *AIStudioHandler) WriteCaption(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req services.WriteCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	caption, err := h.studio.WriteCaption(c.Request.Context(), tenantID, &req)
	if err != nil {
		health.RecordAIStudioOperation("caption", false)
		HandleServiceError(c, "caption", err)
		return
	}

	health.RecordAIStudioOperation("caption", true)
	SuccessResponse(c, http.StatusOK, "Caption written", gin.H{"caption": caption})
}

// ResearchHashtagsRequest carries the research keyword
type ResearchHashtagsRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}

// ResearchHashtags suggests hashtags grouped by expected reach
func (h *AIStudioHandler) ResearchHashtags(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req ResearchHashtagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	research, err := h.studio.ResearchHashtags(c.Request.Context(), tenantID, req.Keyword)
	if err != nil {
		health.RecordAIStudioOperation("hashtags", false)
		HandleServiceError(c, "hashtag research", err)
		return
	}

	health.RecordAIStudioOperation("hashtags", true)
	SuccessResponse(c, http.StatusOK, "Hashtags researched", research)
}

// RepurposeContent rewrites content for another platform
func (h *AIStudioHandler) RepurposeContent(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req services.RepurposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	content, err := h.studio.RepurposeContent(c.Request.Context(), tenantID, &req)
	if err != nil {
		health.RecordAIStudioOperation("repurpose", false)
		HandleServiceError(c, "content repurposing", err)
		return
	}

	health.RecordAIStudioOperation("repurpose", true)
	SuccessResponse(c, http.StatusOK, "Content repurposed", gin.H{"content": content})
}
