package scrimapi

import (
	"context"
	"fmt"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Summaries implements repository.SummaryRepository over the backend API.
// These endpoints are newer than the rest of the backend and may not be
// deployed everywhere; callers treat every error here as "unavailable".
type Summaries struct {
	c *Client
}

func (c *Client) Summaries() *Summaries { return &Summaries{c: c} }

var _ repository.SummaryRepository = (*Summaries)(nil)

// TeamSummary fetches the backend's precomputed team statistics.
func (s *Summaries) TeamSummary(ctx context.Context, teamID int64) (model.TeamStatisticsSummary, error) {
	var out model.TeamStatisticsSummary
	path := fmt.Sprintf("/api/teams/%d/statistics/", teamID)
	if err := s.c.getJSON(ctx, path, &out); err != nil {
		return model.TeamStatisticsSummary{}, fmt.Errorf("team summary %d: %w", teamID, err)
	}
	return out, nil
}

// PlayerSummary fetches the backend's precomputed player statistics scoped
// to one team.
func (s *Summaries) PlayerSummary(ctx context.Context, playerID, teamID int64) (model.PlayerStatisticsSummary, error) {
	var out model.PlayerStatisticsSummary
	path := fmt.Sprintf("/api/players/%d/statistics/?team_id=%d", playerID, teamID)
	if err := s.c.getJSON(ctx, path, &out); err != nil {
		return model.PlayerStatisticsSummary{}, fmt.Errorf("player summary %d/%d: %w", playerID, teamID, err)
	}
	return out, nil
}
