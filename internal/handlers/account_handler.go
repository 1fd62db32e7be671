package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/events"
	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
)

// AccountHandler serves social account CRUD endpoints
type AccountHandler struct {
	accounts  repository.AccountRepository
	analytics services.AnalyticsService
	publisher events.Publisher
	logger    *logrus.Entry
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts repository.AccountRepository, analytics services.AnalyticsService, publisher events.Publisher, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		analytics: analytics,
		publisher: publisher,
		logger:    logger.WithField("handler", "accounts"),
	}
}

// ListAccounts returns the tenant's social accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	filters := repository.AccountFilters{
		Platform: queryString(c, "platform"),
		Status:   queryString(c, "status"),
	}
	accounts, err := h.accounts.List(c.Request.Context(), tenantID, filters, queryLimit(c))
	if err != nil {
		HandleServiceError(c, "account", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Accounts retrieved", accounts)
}

// GetAccount returns one owned account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid account id", nil)
		return
	}

	account, err := h.accounts.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "account", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Account retrieved", account)
}

// CreateAccountRequest carries the fields accepted when connecting an account
type CreateAccountRequest struct {
	Platform       string  `json:"platform" binding:"required"`
	AccountName    string  `json:"account_name" binding:"required"`
	PlatformUserID *string `json:"platform_user_id,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
	Status         string  `json:"status,omitempty"`
}

// CreateAccount connects a new social account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.AccountName) == "" {
		ErrorResponse(c, http.StatusBadRequest, "account_name must not be empty", nil)
		return
	}
	status := req.Status
	if status == "" {
		status = models.AccountStatusConnected
	}
	if !models.ValidAccountStatus(status) {
		ErrorResponse(c, http.StatusBadRequest, "Unknown account status: "+status, nil)
		return
	}

	account := &models.SocialAccount{
		Platform:       req.Platform,
		AccountName:    req.AccountName,
		PlatformUserID: req.PlatformUserID,
		AvatarURL:      req.AvatarURL,
		FollowersCount: req.FollowersCount,
		FollowingCount: req.FollowingCount,
		Status:         status,
	}
	if err := h.accounts.Create(c.Request.Context(), tenantID, account); err != nil {
		HandleServiceError(c, "account", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Account connected", account)
}

// UpdateAccountRequest carries the optional fields of a partial account update
type UpdateAccountRequest struct {
	Platform       *string `json:"platform,omitempty"`
	AccountName    *string `json:"account_name,omitempty"`
	PlatformUserID *string `json:"platform_user_id,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	FollowersCount *int    `json:"followers_count,omitempty"`
	FollowingCount *int    `json:"following_count,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// UpdateAccount applies a partial update to an owned account
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid account id", nil)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if req.Status != nil && !models.ValidAccountStatus(*req.Status) {
		ErrorResponse(c, http.StatusBadRequest, "Unknown account status: "+*req.Status, nil)
		return
	}

	account, err := h.accounts.Update(c.Request.Context(), tenantID, id, repository.AccountPatch{
		Platform:       req.Platform,
		AccountName:    req.AccountName,
		PlatformUserID: req.PlatformUserID,
		AvatarURL:      req.AvatarURL,
		FollowersCount: req.FollowersCount,
		FollowingCount: req.FollowingCount,
		Status:         req.Status,
	})
	if err != nil {
		HandleServiceError(c, "account", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusOK, "Account updated", account)
}

// DeleteAccount disconnects an account and removes its dependent records
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid account id", nil)
		return
	}

	account, err := h.accounts.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, "account", err)
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, "account", err)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	if h.publisher != nil {
		if err := h.publisher.PublishAccountDeleted(c.Request.Context(), tenantID, account); err != nil {
			h.logger.WithError(err).Warn("Failed to publish account.deleted event")
		}
	}

	SuccessResponse(c, http.StatusOK, "Account deleted", nil)
}
