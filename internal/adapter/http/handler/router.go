package handler

import (
	"time"

	"safenode/internal/adapter/http/middleware"
	"safenode/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Runner         ports.SweepRunner
	Lock           ports.CycleLock // nil = manual runs are not serialized
	LockTTL        time.Duration
	HealthCheckers []ports.HealthChecker
	OpsToken       string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/healthz", HealthCheck(deps.HealthCheckers...))

	// Operator routes
	sweepHandler := NewSweepHandler(deps.Runner, deps.Lock, deps.LockTTL, deps.Logger)
	internal := r.Group("/internal", middleware.BearerAuth(deps.OpsToken, deps.Logger))
	{
		internal.POST("/sweep/run", sweepHandler.Run)
		internal.GET("/sweep/status", sweepHandler.Status)
	}

	return r
}
