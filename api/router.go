package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hashlens/hashlens/api/handler"
	"github.com/hashlens/hashlens/api/middleware"
	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/graph"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(deps handler.StreamDeps, gc *graph.Client, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Hashtag stream (SSE)
	protected.POST("/hashtag-stream", handler.Stream(deps))

	// Business account proxy
	protected.GET("/profile", handler.Account(gc))

	return r
}
