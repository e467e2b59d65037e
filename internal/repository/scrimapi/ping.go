package scrimapi

import (
	"context"

	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

var _ repository.Pinger = (*Client)(nil)

// Ping checks backend reachability for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "/api/health/", nil)
}
