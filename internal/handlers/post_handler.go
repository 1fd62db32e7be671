package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/health"
	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// PostHandler serves post lifecycle endpoints
type PostHandler struct {
	posts     services.PostService
	analytics services.AnalyticsService
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts services.PostService, analytics services.AnalyticsService) *PostHandler {
	return &PostHandler{
		posts:     posts,
		analytics: analytics,
	}
}

// ListPosts returns the tenant's posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	filters := repository.PostFilters{
		Status:    queryString(c, "status"),
		PostType:  queryString(c, "post_type"),
		AccountID: queryInt64(c, "account_id"),
	}
	posts, err := h.posts.List(c.Request.Context(), tenantID, filters, queryLimit(c))
	if err != nil {
		HandleServiceError(c, "post", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Posts retrieved", posts)
}

// GetPost returns one owned post
func (h *PostHandler) GetPost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid post id", nil)
		return
	}

	post, err := h.posts.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "post", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Post retrieved", post)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		health.RecordPostOperation("create", false)
		HandleServiceError(c, "post", err)
		return
	}

	health.RecordPostOperation("create", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Post created", post)
}

// UpdatePost applies a partial update to an owned post. The raw body is
// inspected so that an explicit null scheduled_at clears the schedule while
// an absent key leaves it alone.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid post id", nil)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	var req services.UpdatePostRequest
	if err := bindRaw(raw, &req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if _, present := raw["scheduled_at"]; present {
		req.SetScheduledAt = true
	}

	post, err := h.posts.Update(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		health.RecordPostOperation("update", false)
		HandleServiceError(c, "post", err)
		return
	}

	health.RecordPostOperation("update", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Post updated", post)
}

// DeletePost removes an owned post
func (h *PostHandler) DeletePost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid post id", nil)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), tenantID, id); err != nil {
		health.RecordPostOperation("delete", false)
		HandleServiceError(c, "post", err)
		return
	}

	health.RecordPostOperation("delete", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Post deleted", nil)
}

// SchedulePostRequest carries the schedule time
type SchedulePostRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// SchedulePost moves a post into the scheduled state
func (h *PostHandler) SchedulePost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid post id", nil)
		return
	}

	var req SchedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	post, err := h.posts.Schedule(c.Request.Context(), tenantID, id, req.ScheduledAt)
	if err != nil {
		health.RecordPostOperation("schedule", false)
		HandleServiceError(c, "post", err)
		return
	}

	health.RecordPostOperation("schedule", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Post scheduled", post)
}

// PublishPost marks a post published now
func (h *PostHandler) PublishPost(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid post id", nil)
		return
	}

	post, err := h.posts.Publish(c.Request.Context(), tenantID, id)
	if err != nil {
		health.RecordPostOperation("publish", false)
		HandleServiceError(c, "post", err)
		return
	}

	health.RecordPostOperation("publish", true)
	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Post published", post)
}

// ListUpcoming returns scheduled posts inside the next N days
func (h *PostHandler) ListUpcoming(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	days := 7
	if value := c.Query("days"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			days = parsed
		}
	}

	posts, err := h.posts.ListUpcoming(c.Request.Context(), tenantID, days)
	if err != nil {
		HandleServiceError(c, "post", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Upcoming posts retrieved", posts)
}

// bindRaw re-decodes a raw JSON object into a typed request
func bindRaw(raw map[string]json.RawMessage, target interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
