package scrimapi

import (
	"context"
	"fmt"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Teams implements repository.TeamRepository over the backend API.
type Teams struct {
	c *Client
}

func (c *Client) Teams() *Teams { return &Teams{c: c} }

var _ repository.TeamRepository = (*Teams)(nil)

// GetByID fetches a single team entity.
func (t *Teams) GetByID(ctx context.Context, id int64) (model.Team, error) {
	var out model.Team
	path := fmt.Sprintf("/api/teams/%d/", id)
	if err := t.c.getJSON(ctx, path, &out); err != nil {
		return model.Team{}, fmt.Errorf("get team %d: %w", id, err)
	}
	return out, nil
}
