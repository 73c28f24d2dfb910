package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dmappex-backend/internal/matching"
	"dmappex-backend/internal/services/health"
	"dmappex-backend/internal/shared/config"
	"dmappex-backend/internal/shared/metrics"
	"dmappex-backend/internal/shared/server/middleware"
	"dmappex-backend/internal/shared/server/respond"
)

const rootMessage = "DMAppex 3AI-MCP Backend Running"

// RouterDeps holds the handlers the router mounts.
type RouterDeps struct {
	Config       config.Config
	MatchHandler *matching.Handler
	Health       *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)
	// Metrics wrap CORS so aborted preflights are still observed.
	if deps.Config.MetricsEnabled {
		r.Use(metrics.HTTP())
	}
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))
	if deps.Config.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}

	r.GET("/", func(c *gin.Context) {
		respond.Message(c, rootMessage)
	})
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})

	if deps.MatchHandler != nil {
		deps.MatchHandler.RegisterRoutes(r.Group("/api"))
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
