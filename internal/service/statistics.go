package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/scrimtrack/scrim-stats-service/internal/cache"
	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// statisticsService orchestrates the read path: cache check, precomputed
// backend summary, aggregator fallback, normalization, cache write.
// Concurrent identical requests are coalesced through singleflight keyed
// the same as the cache, so a cold key is computed once.
type statisticsService struct {
	agg         *Aggregator
	remote      repository.SummaryRepository
	teamCache   *cache.Store[model.TeamStatisticsSummary]
	playerCache *cache.Store[model.PlayerStatisticsSummary]
	flight      singleflight.Group
	log         zerolog.Logger
}

// NewStatisticsService wires the orchestrator with fresh cache namespaces.
func NewStatisticsService(agg *Aggregator, remote repository.SummaryRepository, ttl time.Duration, logger zerolog.Logger) StatisticsService {
	return NewStatisticsServiceWithCaches(agg, remote,
		cache.NewStore[model.TeamStatisticsSummary](ttl),
		cache.NewStore[model.PlayerStatisticsSummary](ttl),
		logger)
}

// NewStatisticsServiceWithCaches accepts externally built namespaces so
// tests can inject a fake clock.
func NewStatisticsServiceWithCaches(agg *Aggregator, remote repository.SummaryRepository, teams *cache.Store[model.TeamStatisticsSummary], players *cache.Store[model.PlayerStatisticsSummary], logger zerolog.Logger) StatisticsService {
	l := logger.With().Str("module", "service").Str("component", "statistics").Logger()
	return &statisticsService{
		agg:         agg,
		remote:      remote,
		teamCache:   teams,
		playerCache: players,
		log:         l,
	}
}

func teamKey(teamID int64) string {
	return strconv.FormatInt(teamID, 10)
}

// playerKey is the "playerId_teamId" composite: the same player on two
// different teams is two separate cache entries.
func playerKey(playerID, teamID int64) string {
	return strconv.FormatInt(playerID, 10) + "_" + strconv.FormatInt(teamID, 10)
}

func (s *statisticsService) GetTeamStatistics(ctx context.Context, teamID int64) (model.TeamStatisticsSummary, error) {
	if teamID <= 0 {
		return model.TeamStatisticsSummary{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}

	key := teamKey(teamID)
	if cached, ok := s.teamCache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.flight.Do("team:"+key, func() (interface{}, error) {
		start := time.Now()

		if summary, err := s.remote.TeamSummary(ctx, teamID); err == nil {
			summary = normalizeTeamSummary(summary)
			s.teamCache.Put(key, summary)
			return summary, nil
		} else {
			s.log.Debug().Err(err).Int64("team_id", teamID).
				Msg("precomputed team summary unavailable, aggregating locally")
		}

		summary, err := s.agg.TeamSummary(ctx, teamID)
		if err != nil {
			// ErrNoMatches propagates as-is and is never cached.
			return nil, err
		}
		summary = normalizeTeamSummary(summary)
		s.teamCache.Put(key, summary)
		s.log.Info().Dur("took", time.Since(start)).Int64("team_id", teamID).
			Int("matches", summary.TotalMatches).Msg("team statistics aggregated")
		return summary, nil
	})
	if err != nil {
		return model.TeamStatisticsSummary{}, err
	}
	return v.(model.TeamStatisticsSummary), nil
}

func (s *statisticsService) GetPlayerStatistics(ctx context.Context, playerID, teamID int64) (model.PlayerStatisticsSummary, error) {
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PlayerStatisticsSummary{}, err
	}

	key := playerKey(playerID, teamID)
	if cached, ok := s.playerCache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.flight.Do("player:"+key, func() (interface{}, error) {
		if summary, err := s.remote.PlayerSummary(ctx, playerID, teamID); err == nil {
			summary = normalizePlayerSummary(summary)
			s.playerCache.Put(key, summary)
			return summary, nil
		} else {
			s.log.Debug().Err(err).Int64("player_id", playerID).Int64("team_id", teamID).
				Msg("precomputed player summary unavailable, aggregating locally")
		}

		summary, err := s.agg.PlayerSummary(ctx, playerID, teamID)
		if err != nil {
			return nil, err
		}
		summary = normalizePlayerSummary(summary)
		s.playerCache.Put(key, summary)
		return summary, nil
	})
	if err != nil {
		return model.PlayerStatisticsSummary{}, err
	}
	return v.(model.PlayerStatisticsSummary), nil
}

// InvalidateTeam drops the team's summary and every player summary keyed to
// that team; their values derive from the same match data.
func (s *statisticsService) InvalidateTeam(teamID int64) {
	s.teamCache.Invalidate(teamKey(teamID))
	suffix := "_" + strconv.FormatInt(teamID, 10)
	s.playerCache.InvalidateFunc(func(key string) bool {
		return strings.HasSuffix(key, suffix)
	})
}

func (s *statisticsService) InvalidatePlayer(playerID, teamID int64) {
	s.playerCache.Invalidate(playerKey(playerID, teamID))
}

func (s *statisticsService) InvalidateAll() {
	s.teamCache.InvalidateAll()
	s.playerCache.InvalidateAll()
}
