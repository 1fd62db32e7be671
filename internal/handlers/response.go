package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/socialpro-hub/content-service/internal/ownership"
	"github.com/socialpro-hub/content-service/internal/services"
)

// ErrorResponse sends a standardized error response
// Internal errors are logged but not exposed to clients
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	requestID := getRequestID(c)

	// Log internal error details
	if err != nil {
		log.Printf("[ERROR] [%s] %s: %v", requestID, message, err)
	}

	// Send user-friendly response (don't expose internal errors)
	response := gin.H{
		"success":    false,
		"message":    message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}

	// Only include error details in development mode
	if gin.Mode() == gin.DebugMode && err != nil {
		response["error_details"] = err.Error()
	}

	c.JSON(statusCode, response)
}

// SuccessResponse sends a standardized success response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	requestID := getRequestID(c)

	response := gin.H{
		"success":    true,
		"message":    message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}

	if data != nil {
		response["data"] = data
	}

	c.JSON(statusCode, response)
}

// HandleServiceError maps domain errors onto HTTP status codes. Records that
// exist but belong to another tenant surface as not found.
func HandleServiceError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, ownership.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, resource+" not found", nil)
	case errors.Is(err, ownership.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "Referenced resource belongs to another tenant", nil)
	default:
		if validationErr, ok := services.IsValidationError(err); ok {
			ErrorResponse(c, http.StatusBadRequest, validationErr.Error(), nil)
			return
		}
		if conflictErr, ok := services.IsConflictError(err); ok {
			ErrorResponse(c, http.StatusConflict, conflictErr.Error(), nil)
			return
		}
		if providerErr, ok := services.IsProviderError(err); ok {
			ErrorResponse(c, http.StatusBadGateway, providerErr.Error(), err)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to process "+resource+" request", err)
	}
}

// getRequestID retrieves or generates a request ID
func getRequestID(c *gin.Context) string {
	// Check if request ID was set by middleware
	if requestID, exists := c.Get("request_id"); exists {
		return requestID.(string)
	}
	// Fallback to X-Request-ID header
	if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
		return requestID
	}
	return uuid.NewString()
}
