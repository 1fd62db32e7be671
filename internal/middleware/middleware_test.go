package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTenantRouter() *gin.Engine {
	router := gin.New()
	router.Use(TenantMiddleware())
	router.GET("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
	})
	return router
}

func TestTenantMiddleware_MissingHeader(t *testing.T) {
	router := setupTenantRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without X-Tenant-ID, got %d", w.Code)
	}
}

func TestTenantMiddleware_SetsTenantID(t *testing.T) {
	router := setupTenantRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-Tenant-ID", "tenant-a")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"tenant_id":"tenant-a"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestGetTenantID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := GetTenantID(c); got != "" {
		t.Errorf("expected empty tenant id, got %q", got)
	}
}
