package repository

import (
	"context"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from transport implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MatchRepository declares read access to raw match records.
// I return domain models and surface domain errors from errors.go rather
// than HTTP status codes.
type MatchRepository interface {
	// ListAll returns every recorded match across all teams; side filtering
	// happens in the aggregation layer.
	ListAll(ctx context.Context) ([]model.MatchRecord, error)
}

// StatsRepository declares read access to per-player stat lines of a match.
type StatsRepository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]model.PlayerMatchStat, error)
}

// PlayerRepository declares read access to player entities.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (model.Player, error)
	ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error)
}

// TeamRepository declares read access to team entities.
type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (model.Team, error)
}

// SummaryRepository declares access to precomputed backend summaries.
// The backend may legitimately not implement these endpoints yet; any error
// is treated by callers as "unavailable" and triggers local aggregation.
type SummaryRepository interface {
	TeamSummary(ctx context.Context, teamID int64) (model.TeamStatisticsSummary, error)
	PlayerSummary(ctx context.Context, playerID, teamID int64) (model.PlayerStatisticsSummary, error)
}
