package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateMetric_EngagementRateOutOfRange(t *testing.T) {
	h := NewMetricHandler(nil, nil)
	router := gin.New()
	router.POST("/metrics", h.CreateMetric)

	for _, body := range []string{
		`{"post_id":1,"engagement_rate":150}`,
		`{"post_id":1,"engagement_rate":-0.5}`,
	} {
		w := postJSON(router, http.MethodPost, "/metrics", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "engagement_rate") {
			t.Errorf("body %s: expected engagement_rate in message, got %s", body, w.Body.String())
		}
	}
}

func TestUpdateMetric_EngagementRateOutOfRange(t *testing.T) {
	h := NewMetricHandler(nil, nil)
	router := gin.New()
	router.PUT("/metrics/:id", h.UpdateMetric)

	w := postJSON(router, http.MethodPut, "/metrics/1", `{"engagement_rate":101}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateSnapshot_EngagementRateOutOfRange(t *testing.T) {
	h := NewSnapshotHandler(nil)
	router := gin.New()
	router.POST("/snapshots", h.CreateSnapshot)

	w := postJSON(router, http.MethodPost, "/snapshots",
		`{"account_id":1,"snapshot_date":"2026-03-01","engagement_rate":250}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "engagement_rate") {
		t.Errorf("expected engagement_rate in message, got %s", w.Body.String())
	}
}

func TestUpdateSnapshot_EngagementRateOutOfRange(t *testing.T) {
	h := NewSnapshotHandler(nil)
	router := gin.New()
	router.PUT("/snapshots/:id", h.UpdateSnapshot)

	w := postJSON(router, http.MethodPut, "/snapshots/1", `{"engagement_rate":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestValidEngagementRate_Bounds(t *testing.T) {
	testCases := []struct {
		rate     float64
		expected bool
	}{
		{0, true},
		{100, true},
		{3.8, true},
		{-0.01, false},
		{100.01, false},
	}

	for _, tc := range testCases {
		if got := validEngagementRate(tc.rate); got != tc.expected {
			t.Errorf("validEngagementRate(%v): expected %v, got %v", tc.rate, tc.expected, got)
		}
	}
}
