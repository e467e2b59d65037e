package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scrimtrack/scrim-stats-service/internal/service"
	"github.com/scrimtrack/scrim-stats-service/pkg/response"
)

// StatisticsHandler exposes the cached statistics reads and the cache
// invalidation hooks that mutating collaborators call after writes.
type StatisticsHandler struct {
	stats service.StatisticsService
	teams service.TeamService
}

func NewStatisticsHandler(stats service.StatisticsService, teams service.TeamService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, teams: teams}
}

func (h *StatisticsHandler) Register(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	teams.GET("/:id/statistics", h.teamStatistics)
	teams.GET("/:id/players/:playerId/statistics", h.playerStatistics)
	teams.POST("/:id/statistics/invalidate", h.invalidateTeam)

	r.Group("/statistics").POST("/cache/invalidate", h.invalidateAll)
}

func (h *StatisticsHandler) teamStatistics(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.stats.GetTeamStatistics(c.Request.Context(), teamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, summary)
}

func (h *StatisticsHandler) playerStatistics(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	playerID, ok := pathID(c, "playerId")
	if !ok {
		return
	}
	summary, err := h.stats.GetPlayerStatistics(c.Request.Context(), playerID, teamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, summary)
}

// invalidateTeam busts everything derived from one team's data: its summary,
// its players' summaries and the cached entity lookups.
func (h *StatisticsHandler) invalidateTeam(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.stats.InvalidateTeam(teamID)
	h.teams.Invalidate(teamID)
	response.WriteData(c, http.StatusOK, gin.H{"invalidated": teamID})
}

// invalidateAll clears every cache namespace.
func (h *StatisticsHandler) invalidateAll(c *gin.Context) {
	h.stats.InvalidateAll()
	h.teams.InvalidateAll()
	response.WriteData(c, http.StatusOK, gin.H{"invalidated": "all"})
}

// pathID parses a positive int64 path parameter, writing the 400 itself so
// handlers stay linear.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{
			{Field: name, Message: "must be a valid integer > 0"},
		}))
		return 0, false
	}
	return id, true
}
