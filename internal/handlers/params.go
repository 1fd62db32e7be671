package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryString returns a pointer to a non-empty query value
func queryString(c *gin.Context, name string) *string {
	if value := c.Query(name); value != "" {
		return &value
	}
	return nil
}

// queryInt64 returns a pointer to a parsed numeric query value
func queryInt64(c *gin.Context, name string) *int64 {
	if value := c.Query(name); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

// queryBool returns a pointer to a parsed boolean query value
func queryBool(c *gin.Context, name string) *bool {
	if value := c.Query(name); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return &parsed
		}
	}
	return nil
}

// queryLimit returns the limit query value, zero when absent
func queryLimit(c *gin.Context) int {
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return 0
}

// validEngagementRate reports whether a rate is an in-range percentage.
func validEngagementRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}

// queryDate parses a YYYY-MM-DD or RFC 3339 query value. Malformed values
// are ignored.
func queryDate(c *gin.Context, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}
