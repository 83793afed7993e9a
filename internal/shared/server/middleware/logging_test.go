package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(prev) })

	router := gin.New()
	router.Use(RequestID(), Identity(), Logging())
	router.POST("/api/v1/exports/:kind", func(c *gin.Context) {
		c.Set(ExportKindKey, c.Param("kind"))
		c.Set(GateStateKey, "confirming")
		c.JSON(http.StatusPaymentRequired, gin.H{"ok": false})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/docx", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "user_id", "route", "duration_ms", "status", "export_kind", "gate_state"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["request_id"] != "req-42" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["user_id"] != "guest:guest1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["route"] != "/api/v1/exports/:kind" || payload["export_kind"] != "docx" {
		t.Fatalf("unexpected route fields: %v %v", payload["route"], payload["export_kind"])
	}
	if payload["status"] != float64(http.StatusPaymentRequired) || payload["gate_state"] != "confirming" {
		t.Fatalf("unexpected status fields: %v %v", payload["status"], payload["gate_state"])
	}
}
