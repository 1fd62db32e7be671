package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/socialpro-hub/content-service/internal/ownership"
	"github.com/socialpro-hub/content-service/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordServiceError(resource string, err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "test-request-id")
	HandleServiceError(c, resource, err)
	return w
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", ownership.ErrNotFound, http.StatusNotFound},
		{"forbidden parent", ownership.ErrForbidden, http.StatusForbidden},
		{"validation", services.NewValidationError("status", "unknown status", nil), http.StatusBadRequest},
		{"conflict", services.NewConflictError("post", "already published"), http.StatusConflict},
		{"provider", services.NewProviderError("gemini", "quota exceeded"), http.StatusBadGateway},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		w := recordServiceError("post", tc.err)
		if w.Code != tc.expected {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.expected, w.Code)
		}
	}
}

func TestHandleServiceError_HidesInternalDetails(t *testing.T) {
	w := recordServiceError("post", errors.New("pq: relation posts does not exist"))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if body["success"] != false {
		t.Error("expected success=false")
	}
	if body["request_id"] != "test-request-id" {
		t.Errorf("expected request id to round-trip, got %v", body["request_id"])
	}
	if _, leaked := body["error_details"]; leaked {
		t.Error("internal error details must not leak outside debug mode")
	}
	if msg, _ := body["message"].(string); msg == "" || msg == "pq: relation posts does not exist" {
		t.Errorf("expected a sanitized message, got %q", msg)
	}
}

func TestHandleServiceError_ValidationMessageSurfaces(t *testing.T) {
	w := recordServiceError("post", services.NewValidationError("post_type", "unknown post type \"reel\"", []string{"text", "image"}))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	msg, _ := body["message"].(string)
	if msg == "" {
		t.Fatal("expected a message")
	}
	// Validation failures are the caller's to fix, so the field name surfaces.
	if want := "post_type"; !strings.Contains(msg, want) {
		t.Errorf("expected message to mention %q, got %q", want, msg)
	}
}
