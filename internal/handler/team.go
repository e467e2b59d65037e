package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scrimtrack/scrim-stats-service/internal/service"
	"github.com/scrimtrack/scrim-stats-service/pkg/response"
)

// TeamHandler exposes the cached team entity reads dashboards scaffold with.
type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	teams.GET("/:id", h.get)
	teams.GET("/:id/players", h.listPlayers)
}

func (h *TeamHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	team, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) listPlayers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	players, err := h.svc.ListTeamPlayers(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}
