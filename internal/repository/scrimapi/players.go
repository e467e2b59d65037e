package scrimapi

import (
	"context"
	"fmt"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Players implements repository.PlayerRepository over the backend API.
type Players struct {
	c *Client
}

func (c *Client) Players() *Players { return &Players{c: c} }

var _ repository.PlayerRepository = (*Players)(nil)

// GetByID fetches a single player entity.
func (p *Players) GetByID(ctx context.Context, id int64) (model.Player, error) {
	var out model.Player
	path := fmt.Sprintf("/api/players/%d/", id)
	if err := p.c.getJSON(ctx, path, &out); err != nil {
		return model.Player{}, fmt.Errorf("get player %d: %w", id, err)
	}
	return out, nil
}

// ListByTeam fetches the current roster of a team.
func (p *Players) ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error) {
	var players []model.Player
	path := fmt.Sprintf("/api/teams/%d/players/", teamID)
	if err := p.c.getJSON(ctx, path, &players); err != nil {
		return nil, fmt.Errorf("list players for team %d: %w", teamID, err)
	}
	return players, nil
}
