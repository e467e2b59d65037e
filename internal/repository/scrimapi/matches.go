package scrimapi

import (
	"context"
	"fmt"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Matches implements repository.MatchRepository over the backend API.
type Matches struct {
	c *Client
}

func (c *Client) Matches() *Matches { return &Matches{c: c} }

var _ repository.MatchRepository = (*Matches)(nil)

// ListAll fetches every recorded match. The backend does not paginate this
// listing; a single roster's scrim history stays small enough to ship whole.
func (m *Matches) ListAll(ctx context.Context) ([]model.MatchRecord, error) {
	var matches []model.MatchRecord
	if err := m.c.getJSON(ctx, "/api/matches/", &matches); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// Stats implements repository.StatsRepository over the backend API.
type Stats struct {
	c *Client
}

func (c *Client) Stats() *Stats { return &Stats{c: c} }

var _ repository.StatsRepository = (*Stats)(nil)

// ListByMatch fetches the per-player stat lines recorded for one match.
func (s *Stats) ListByMatch(ctx context.Context, matchID int64) ([]model.PlayerMatchStat, error) {
	var stats []model.PlayerMatchStat
	path := fmt.Sprintf("/api/matches/%d/stats/", matchID)
	if err := s.c.getJSON(ctx, path, &stats); err != nil {
		return nil, fmt.Errorf("list stats for match %d: %w", matchID, err)
	}
	return stats, nil
}
