package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// CalendarHandler serves content calendar endpoints
type CalendarHandler struct {
	calendar repository.CalendarRepository
	posts    repository.PostRepository
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendar repository.CalendarRepository, posts repository.PostRepository) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		posts:    posts,
	}
}

// ListEntries returns the tenant's calendar entries
func (h *CalendarHandler) ListEntries(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	filters := repository.CalendarFilters{
		Category: queryString(c, "category"),
		From:     queryDate(c, "from"),
		To:       queryDate(c, "to"),
	}
	entries, err := h.calendar.List(c.Request.Context(), tenantID, filters, queryLimit(c))
	if err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Calendar entries retrieved", entries)
}

// DayView returns the entries and scheduled posts for one day
func (h *CalendarHandler) DayView(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	entries, err := h.calendar.ListOn(c.Request.Context(), tenantID, day)
	if err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	posts, err := h.posts.ListScheduledOn(c.Request.Context(), tenantID, day)
	if err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Day view retrieved", gin.H{
		"date":            day.Format("2006-01-02"),
		"entries":         entries,
		"scheduled_posts": posts,
	})
}

// GetEntry returns one owned calendar entry
func (h *CalendarHandler) GetEntry(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid entry id", nil)
		return
	}

	entry, err := h.calendar.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Calendar entry retrieved", entry)
}

// CreateEntryRequest carries the fields accepted when creating an entry
type CreateEntryRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	EntryDate   string  `json:"entry_date" binding:"required"`
	TimeSlot    *string `json:"time_slot,omitempty"`
	PostID      *int64  `json:"post_id,omitempty"`
	Category    string  `json:"category" binding:"required"`
	Color       string  `json:"color,omitempty"`
}

// CreateEntry creates a calendar entry. A linked post must belong to the
// same tenant.
func (h *CalendarHandler) CreateEntry(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid entry_date, expected YYYY-MM-DD", nil)
		return
	}
	color := req.Color
	if color == "" {
		color = models.DefaultEntryColor
	}

	entry := &models.ContentCalendarEntry{
		Title:       req.Title,
		Description: req.Description,
		EntryDate:   entryDate,
		TimeSlot:    req.TimeSlot,
		PostID:      req.PostID,
		Category:    req.Category,
		Color:       color,
	}
	if err := h.calendar.Create(c.Request.Context(), tenantID, entry); err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Calendar entry created", entry)
}

// UpdateEntryRequest carries the optional fields of a partial entry update
type UpdateEntryRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EntryDate   *string `json:"entry_date,omitempty"`
	TimeSlot    *string `json:"time_slot,omitempty"`
	PostID      *int64  `json:"post_id,omitempty"`
	Category    *string `json:"category,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// UpdateEntry applies a partial update. An explicit null post_id clears the
// post link; an absent key leaves it alone.
func (h *CalendarHandler) UpdateEntry(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid entry id", nil)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	var req UpdateEntryRequest
	if err := bindRaw(raw, &req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	patch := repository.CalendarPatch{
		Title:       req.Title,
		Description: req.Description,
		TimeSlot:    req.TimeSlot,
		Category:    req.Category,
		Color:       req.Color,
	}
	if req.EntryDate != nil {
		entryDate, err := time.Parse("2006-01-02", *req.EntryDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid entry_date, expected YYYY-MM-DD", nil)
			return
		}
		patch.EntryDate = &entryDate
	}
	if _, present := raw["post_id"]; present {
		patch.SetPostID = true
		patch.PostID = req.PostID
	}

	entry, err := h.calendar.Update(c.Request.Context(), tenantID, id, patch)
	if err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Calendar entry updated", entry)
}

// DeleteEntry removes a calendar entry
func (h *CalendarHandler) DeleteEntry(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid entry id", nil)
		return
	}

	if err := h.calendar.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "calendar entry", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Calendar entry deleted", nil)
}
