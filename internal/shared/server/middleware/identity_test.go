package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func identityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity("/api/v1/health"))
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/api/v1/resume", func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	})
	router.OPTIONS("/api/v1/resume", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestIdentityAllowsOptionsWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resume", nil)
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestIdentityFromGuestHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		path   string
		status int
		body   string
	}{
		{name: "guest", header: " device-1 ", path: "/api/v1/resume", status: http.StatusOK, body: "guest:device-1"},
		{name: "missing", path: "/api/v1/resume", status: http.StatusUnauthorized},
		{name: "path separator", header: "a/b", path: "/api/v1/resume", status: http.StatusBadRequest},
		{name: "too long", header: strings.Repeat("x", 200), path: "/api/v1/resume", status: http.StatusBadRequest},
		{name: "public path", path: "/api/v1/health", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("X-Guest-Id", tt.header)
			}
			resp := httptest.NewRecorder()
			identityRouter().ServeHTTP(resp, req)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if tt.body != "" && resp.Body.String() != tt.body {
				t.Fatalf("unexpected owner %q", resp.Body.String())
			}
		})
	}
}
