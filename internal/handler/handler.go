package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/scrimtrack/scrim-stats-service/internal/service"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, backend Pinger, statsSvc service.StatisticsService, teamSvc service.TeamService) {
	h := NewHealthHandler(backend)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewTeamHandler(teamSvc).Register(api)
		NewStatisticsHandler(statsSvc, teamSvc).Register(api)
	}
}
