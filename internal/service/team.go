package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scrimtrack/scrim-stats-service/internal/cache"
	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// teamService serves cached team entity reads. Teams and rosters change far
// less often than match data, so they share the statistics TTL and the same
// invalidation hooks.
type teamService struct {
	teams       repository.TeamRepository
	players     repository.PlayerRepository
	teamCache   *cache.Store[model.Team]
	rosterCache *cache.Store[[]model.Player]
	log         zerolog.Logger
}

func NewTeamService(teams repository.TeamRepository, players repository.PlayerRepository, ttl time.Duration, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{
		teams:       teams,
		players:     players,
		teamCache:   cache.NewStore[model.Team](ttl),
		rosterCache: cache.NewStore[[]model.Player](ttl),
		log:         l,
	}
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	key := teamKey(id)
	if cached, ok := s.teamCache.Get(key); ok {
		return cached, nil
	}
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Int64("team_id", id).Msg("get team failed")
		return model.Team{}, err
	}
	s.teamCache.Put(key, team)
	return team, nil
}

func (s *teamService) ListTeamPlayers(ctx context.Context, teamID int64) ([]model.Player, error) {
	if teamID <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	key := teamKey(teamID)
	if cached, ok := s.rosterCache.Get(key); ok {
		return cached, nil
	}
	players, err := s.players.ListByTeam(ctx, teamID)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Msg("list team players failed")
		return nil, err
	}
	if players == nil {
		players = []model.Player{}
	}
	s.rosterCache.Put(key, players)
	return players, nil
}

// Invalidate busts both team-entity namespaces for one team.
func (s *teamService) Invalidate(teamID int64) {
	key := teamKey(teamID)
	s.teamCache.Invalidate(key)
	s.rosterCache.Invalidate(key)
}

// InvalidateAll clears both team-entity namespaces.
func (s *teamService) InvalidateAll() {
	s.teamCache.InvalidateAll()
	s.rosterCache.InvalidateAll()
}
