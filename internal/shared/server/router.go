package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/builder"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/api/v1/metrics"
)

// RouterDeps holds handlers registered on the router.
type RouterDeps struct {
	Config  config.Config
	Builder *builder.Handler
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(healthPath, metricsPath),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: middleware.AssistGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				middleware.GroupAssist: middleware.PerMinute(deps.Config.AssistRate, deps.Config.AssistBurst),
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.Builder != nil {
		deps.Builder.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
