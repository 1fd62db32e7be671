package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/services"
)

// SeedHandler serves the demo content endpoint
type SeedHandler struct {
	seeder    services.SeedService
	analytics services.AnalyticsService
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder services.SeedService, analytics services.AnalyticsService) *SeedHandler {
	return &SeedHandler{
		seeder:    seeder,
		analytics: analytics,
	}
}

// SeedTenant installs the demo dataset for the calling tenant
func (h *SeedHandler) SeedTenant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	result, err := h.seeder.SeedTenant(c.Request.Context(), tenantID)
	if err != nil {
		HandleServiceError(c, "seed", err)
		return
	}

	if result.AlreadySeeded {
		SuccessResponse(c, http.StatusOK, "Tenant already has content", result)
		return
	}

	h.analytics.InvalidateDashboard(tenantID)
	SuccessResponse(c, http.StatusCreated, "Demo content created", result)
}
