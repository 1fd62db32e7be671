package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// SnapshotHandler serves audience snapshot endpoints
type SnapshotHandler struct {
	snapshots repository.SnapshotRepository
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshots repository.SnapshotRepository) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// ListSnapshots returns snapshots for the tenant's accounts
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	snapshots, err := h.snapshots.List(c.Request.Context(), tenantID, queryInt64(c, "account_id"), queryLimit(c))
	if err != nil {
		HandleServiceError(c, "snapshot", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Snapshots retrieved", snapshots)
}

// GetSnapshot returns one snapshot owned through its account
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid snapshot id", nil)
		return
	}

	snapshot, err := h.snapshots.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "snapshot", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Snapshot retrieved", snapshot)
}

// CreateSnapshotRequest carries the fields accepted when recording a snapshot
type CreateSnapshotRequest struct {
	AccountID      int64    `json:"account_id" binding:"required"`
	SnapshotDate   string   `json:"snapshot_date" binding:"required"`
	Followers      int      `json:"followers"`
	Following      int      `json:"following"`
	EngagementRate float64  `json:"engagement_rate"`
	TopPostType    *string  `json:"top_post_type,omitempty"`
	AudienceGrowth float64  `json:"audience_growth"`
	PeakHours      []string `json:"peak_hours,omitempty"`
}

// CreateSnapshot records a snapshot for an owned account
func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	snapshotDate, err := time.Parse("2006-01-02", req.SnapshotDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid snapshot_date, expected YYYY-MM-DD", nil)
		return
	}
	if !validEngagementRate(req.EngagementRate) {
		HandleServiceError(c, "snapshot", services.NewValidationError("engagement_rate", "engagement_rate must be between 0 and 100", nil))
		return
	}

	snapshot := &models.AudienceSnapshot{
		AccountID:      req.AccountID,
		SnapshotDate:   snapshotDate,
		Followers:      req.Followers,
		Following:      req.Following,
		EngagementRate: req.EngagementRate,
		TopPostType:    req.TopPostType,
		AudienceGrowth: req.AudienceGrowth,
	}
	if len(req.PeakHours) > 0 {
		raw, err := models.JSONStringList(req.PeakHours)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "peak_hours must be a list of strings", nil)
			return
		}
		snapshot.PeakHours = raw
	}

	if err := h.snapshots.Create(c.Request.Context(), tenantID, snapshot); err != nil {
		HandleServiceError(c, "snapshot", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Snapshot recorded", snapshot)
}

// UpdateSnapshotRequest carries the optional fields of a partial update
type UpdateSnapshotRequest struct {
	SnapshotDate   *string   `json:"snapshot_date,omitempty"`
	Followers      *int      `json:"followers,omitempty"`
	Following      *int      `json:"following,omitempty"`
	EngagementRate *float64  `json:"engagement_rate,omitempty"`
	TopPostType    *string   `json:"top_post_type,omitempty"`
	AudienceGrowth *float64  `json:"audience_growth,omitempty"`
	PeakHours      *[]string `json:"peak_hours,omitempty"`
}

// UpdateSnapshot applies a partial update to a snapshot
func (h *SnapshotHandler) UpdateSnapshot(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid snapshot id", nil)
		return
	}

	var req UpdateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if req.EngagementRate != nil && !validEngagementRate(*req.EngagementRate) {
		HandleServiceError(c, "snapshot", services.NewValidationError("engagement_rate", "engagement_rate must be between 0 and 100", nil))
		return
	}

	patch := repository.SnapshotPatch{
		Followers:      req.Followers,
		Following:      req.Following,
		EngagementRate: req.EngagementRate,
		TopPostType:    req.TopPostType,
		AudienceGrowth: req.AudienceGrowth,
		PeakHours:      req.PeakHours,
	}
	if req.SnapshotDate != nil {
		snapshotDate, err := time.Parse("2006-01-02", *req.SnapshotDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid snapshot_date, expected YYYY-MM-DD", nil)
			return
		}
		patch.SnapshotDate = &snapshotDate
	}

	snapshot, err := h.snapshots.Update(c.Request.Context(), tenantID, id, patch)
	if err != nil {
		HandleServiceError(c, "snapshot", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Snapshot updated", snapshot)
}

// DeleteSnapshot removes a snapshot
func (h *SnapshotHandler) DeleteSnapshot(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid snapshot id", nil)
		return
	}

	if err := h.snapshots.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "snapshot", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Snapshot deleted", nil)
}
