package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestRecoveryReturnsEnvelopeAndLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	prev := telemetry.SetOutput(&logs)
	t.Cleanup(func() { telemetry.SetOutput(prev) })

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("layout exploded") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"internal"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if !strings.Contains(logs.String(), "layout exploded") || !strings.Contains(logs.String(), `"route":"/boom"`) {
		t.Fatalf("panic not logged: %s", logs.String())
	}
}
