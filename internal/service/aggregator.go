package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Caps from the dashboard layouts: hero tables show at most this many rows.
const (
	teamHeroLimit    = 10
	playerHeroLimit  = 5
	recentMatchLimit = 5
)

// Aggregator derives team and player summaries from raw match data when the
// backend has no precomputed answer. It issues logical fetches only; one
// failing per-match or per-player fetch is logged and skipped, never fatal.
type Aggregator struct {
	matches repository.MatchRepository
	stats   repository.StatsRepository
	players repository.PlayerRepository
	teams   repository.TeamRepository
	log     zerolog.Logger
}

func NewAggregator(matches repository.MatchRepository, stats repository.StatsRepository, players repository.PlayerRepository, teams repository.TeamRepository, logger zerolog.Logger) *Aggregator {
	l := logger.With().Str("module", "service").Str("component", "aggregator").Logger()
	return &Aggregator{matches: matches, stats: stats, players: players, teams: teams, log: l}
}

// TeamSummary computes a full team dashboard summary for teamID.
// A team with no recorded matches yields ErrNoMatches.
func (a *Aggregator) TeamSummary(ctx context.Context, teamID int64) (model.TeamStatisticsSummary, error) {
	teamMatches, err := a.teamMatches(ctx, teamID)
	if err != nil {
		return model.TeamStatisticsSummary{}, err
	}
	if len(teamMatches) == 0 {
		return model.TeamStatisticsSummary{}, fmt.Errorf("team %d: %w", teamID, ErrNoMatches)
	}

	stats := a.collectStats(ctx, teamMatches, teamID)

	total := len(teamMatches)
	wins := 0
	won := make(map[int64]bool, total)
	for _, m := range teamMatches {
		if m.WonBy(teamID) {
			wins++
			won[m.ID] = true
		}
	}

	var kills, deaths, assists int
	byMatch := make(map[int64][]model.PlayerMatchStat)
	for _, st := range stats {
		kills += st.Kills
		deaths += st.Deaths
		assists += st.Assists
		byMatch[st.MatchID] = append(byMatch[st.MatchID], st)
	}

	names := make(map[int64]string)
	opponent := func(m model.MatchRecord) string {
		return a.opponentName(ctx, m, teamID, names)
	}

	playerIDs := uniquePlayerIDs(stats)
	playerStats := make([]model.PlayerStatisticsSummary, 0, len(playerIDs))
	for _, pid := range playerIDs {
		ps, err := a.playerSummary(ctx, pid, teamID, teamMatches, stats, opponent)
		if err != nil {
			// One missing player must not abort the team computation.
			a.log.Warn().Err(err).Int64("player_id", pid).Int64("team_id", teamID).
				Msg("skipping player summary")
			continue
		}
		playerStats = append(playerStats, ps)
	}

	return model.TeamStatisticsSummary{
		TotalMatches:       total,
		Wins:               wins,
		Losses:             total - wins,
		WinRate:            float64(wins) / float64(total) * 100,
		AvgMatchDuration:   averageDuration(teamMatches),
		AvgTeamKDA:         kdaOf(kills, deaths, assists),
		AvgKillsPerMatch:   perMatch(kills, total),
		AvgDeathsPerMatch:  perMatch(deaths, total),
		AvgAssistsPerMatch: perMatch(assists, total),
		HeroPickFrequency:  heroPicks(stats, won, teamHeroLimit),
		DamageDistribution: distribution(playerStats, func(ps model.PlayerStatisticsSummary) float64 { return ps.AvgDamageDealt }),
		GoldDistribution:   distribution(playerStats, func(ps model.PlayerStatisticsSummary) float64 { return ps.AvgGoldEarned }),
		VisionDistribution: distribution(playerStats, func(ps model.PlayerStatisticsSummary) float64 { return ps.AvgVisionScore }),
		PlayerStatistics:   playerStats,
		RecentMatches:      recentMatches(teamMatches, teamID, recentMatchLimit, opponent),
		PerformanceTrend:   performanceTrend(teamMatches, byMatch, teamID, opponent),
	}, nil
}

// PlayerSummary computes one player's summary within a team, recomputing
// the team's match and stat context from scratch.
func (a *Aggregator) PlayerSummary(ctx context.Context, playerID, teamID int64) (model.PlayerStatisticsSummary, error) {
	teamMatches, err := a.teamMatches(ctx, teamID)
	if err != nil {
		return model.PlayerStatisticsSummary{}, err
	}
	if len(teamMatches) == 0 {
		return model.PlayerStatisticsSummary{}, fmt.Errorf("team %d: %w", teamID, ErrNoMatches)
	}

	stats := a.collectStats(ctx, teamMatches, teamID)
	names := make(map[int64]string)
	opponent := func(m model.MatchRecord) string {
		return a.opponentName(ctx, m, teamID, names)
	}
	return a.playerSummary(ctx, playerID, teamID, teamMatches, stats, opponent)
}

// teamMatches fetches all matches and keeps those teamID played in.
func (a *Aggregator) teamMatches(ctx context.Context, teamID int64) ([]model.MatchRecord, error) {
	all, err := a.matches.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.MatchRecord, 0, len(all))
	for _, m := range all {
		if m.Involves(teamID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// collectStats fetches stat lines match by match and keeps the rows played
// for teamID. A failed fetch drops only that match's contribution.
func (a *Aggregator) collectStats(ctx context.Context, matches []model.MatchRecord, teamID int64) []model.PlayerMatchStat {
	var out []model.PlayerMatchStat
	for _, m := range matches {
		rows, err := a.stats.ListByMatch(ctx, m.ID)
		if err != nil {
			a.log.Warn().Err(err).Int64("match_id", m.ID).Msg("skipping match stats")
			continue
		}
		for _, st := range rows {
			if st.MatchID == 0 {
				// Nested serializers omit the parent id.
				st.MatchID = m.ID
			}
			if st.TeamID == teamID {
				out = append(out, st)
			}
		}
	}
	return out
}

// playerSummary computes a summary from an already collected team context.
// The player entity fetch can fail; the caller decides whether that skips
// the player or propagates.
func (a *Aggregator) playerSummary(ctx context.Context, playerID, teamID int64, matches []model.MatchRecord, stats []model.PlayerMatchStat, opponent func(model.MatchRecord) string) (model.PlayerStatisticsSummary, error) {
	player, err := a.players.GetByID(ctx, playerID)
	if err != nil {
		return model.PlayerStatisticsSummary{}, fmt.Errorf("player %d: %w", playerID, err)
	}

	own := make([]model.PlayerMatchStat, 0, len(stats))
	playedIDs := make(map[int64]bool)
	for _, st := range stats {
		if st.PlayerID != playerID {
			continue
		}
		own = append(own, st)
		playedIDs[st.MatchID] = true
	}

	won := make(map[int64]bool)
	played := make([]model.MatchRecord, 0, len(playedIDs))
	wins := 0
	for _, m := range matches {
		if m.WonBy(teamID) {
			won[m.ID] = true
		}
		if !playedIDs[m.ID] {
			continue
		}
		played = append(played, m)
		if m.WonBy(teamID) {
			wins++
		}
	}
	total := len(played)

	var kills, deaths, assists int
	for _, st := range own {
		kills += st.Kills
		deaths += st.Deaths
		assists += st.Assists
	}

	winRate := 0.0
	if total > 0 {
		winRate = float64(wins) / float64(total) * 100
	}

	return model.PlayerStatisticsSummary{
		Player:         player,
		TotalMatches:   total,
		Wins:           wins,
		Losses:         total - wins,
		WinRate:        winRate,
		AvgKDA:         kdaOf(kills, deaths, assists),
		AvgKills:       perMatch(kills, total),
		AvgDeaths:      perMatch(deaths, total),
		AvgAssists:     perMatch(assists, total),
		AvgDamageDealt: averageMetric(own, func(st model.PlayerMatchStat) *float64 { return st.DamageDealt }),
		AvgGoldEarned:  averageMetric(own, func(st model.PlayerMatchStat) *float64 { return st.GoldEarned }),
		AvgVisionScore: averageMetric(own, func(st model.PlayerMatchStat) *float64 { return st.VisionScore }),
		FavoriteHeroes: heroPicks(own, won, playerHeroLimit),
		RecentMatches:  recentMatches(played, teamID, recentMatchLimit, opponent),
	}, nil
}

// opponentName resolves the display name of the side teamID did not play
// for, memoizing lookups per aggregation run. A failed lookup degrades to
// "Unknown" rather than failing the summary.
func (a *Aggregator) opponentName(ctx context.Context, m model.MatchRecord, teamID int64, memo map[int64]string) string {
	oppID, details := m.Opponent(teamID)
	if details != nil && details.Name != "" {
		return details.Name
	}
	if name, ok := memo[oppID]; ok {
		return name
	}
	team, err := a.teams.GetByID(ctx, oppID)
	if err != nil {
		a.log.Warn().Err(err).Int64("team_id", oppID).Msg("opponent lookup failed")
		memo[oppID] = "Unknown"
		return "Unknown"
	}
	memo[oppID] = team.Name
	return team.Name
}

// kdaOf is (kills+assists)/deaths, or kills+assists when deaths is zero.
func kdaOf(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

func perMatch(sum, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return float64(sum) / float64(matches)
}

// averageMetric averages an optional metric over the records where it was
// recorded; the denominator is the count of present values, not matches.
func averageMetric(stats []model.PlayerMatchStat, value func(model.PlayerMatchStat) *float64) float64 {
	var sum float64
	count := 0
	for _, st := range stats {
		if v := value(st); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// uniquePlayerIDs collects distinct non-zero player references in first-seen
// order so derived lists are deterministic.
func uniquePlayerIDs(stats []model.PlayerMatchStat) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, st := range stats {
		if st.PlayerID == 0 || seen[st.PlayerID] {
			continue
		}
		seen[st.PlayerID] = true
		out = append(out, st.PlayerID)
	}
	return out
}

// heroPicks groups stat rows by hero id and tallies picks and wins.
// Rows with no derivable hero id are skipped; each row counts exactly once.
func heroPicks(stats []model.PlayerMatchStat, won map[int64]bool, limit int) []model.HeroPickStat {
	counts := make(map[int64]*model.HeroPickStat)
	for _, st := range stats {
		if !st.Hero.Valid {
			continue
		}
		hp, ok := counts[st.Hero.ID]
		if !ok {
			hp = &model.HeroPickStat{
				HeroID:   st.Hero.ID,
				HeroName: st.Hero.DisplayName(st.HeroName),
			}
			counts[st.Hero.ID] = hp
		}
		hp.Picks++
		if won[st.MatchID] {
			hp.Wins++
		}
	}

	out := make([]model.HeroPickStat, 0, len(counts))
	for _, hp := range counts {
		if hp.Picks > 0 {
			hp.WinRate = float64(hp.Wins) / float64(hp.Picks) * 100
		}
		out = append(out, *hp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Picks != out[j].Picks {
			return out[i].Picks > out[j].Picks
		}
		return out[i].HeroName < out[j].HeroName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// distribution expresses each player's average metric as a share of the sum
// of all players' averages. Players whose average is zero or absent are
// excluded entirely.
func distribution(players []model.PlayerStatisticsSummary, value func(model.PlayerStatisticsSummary) float64) []model.DistributionEntry {
	var total float64
	for _, ps := range players {
		if v := value(ps); v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return []model.DistributionEntry{}
	}

	out := make([]model.DistributionEntry, 0, len(players))
	for _, ps := range players {
		v := value(ps)
		if v <= 0 {
			continue
		}
		out = append(out, model.DistributionEntry{
			PlayerID:     ps.Player.ID,
			PlayerName:   ps.Player.DisplayName(),
			AverageValue: v,
			Percentage:   v / total * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out
}

// recentMatches returns up to limit matches, most recent first.
func recentMatches(matches []model.MatchRecord, teamID int64, limit int, opponent func(model.MatchRecord) string) []model.RecentMatch {
	sorted := make([]model.MatchRecord, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date.Time) {
			return sorted[i].Date.After(sorted[j].Date.Time)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]model.RecentMatch, 0, len(sorted))
	for _, m := range sorted {
		outcome := model.OutcomeDefeat
		if m.WonBy(teamID) {
			outcome = model.OutcomeVictory
		}
		out = append(out, model.RecentMatch{
			MatchID:   m.ID,
			Date:      m.Date,
			ScrimType: m.ScrimType,
			Outcome:   outcome,
			Opponent:  opponent(m),
		})
	}
	return out
}

// performanceTrend builds one point per match in chronological order; the
// KDA of each point is scoped to that match's surviving team stat rows.
func performanceTrend(matches []model.MatchRecord, byMatch map[int64][]model.PlayerMatchStat, teamID int64, opponent func(model.MatchRecord) string) []model.PerformanceTrendPoint {
	sorted := make([]model.MatchRecord, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date.Time) {
			return sorted[i].Date.Before(sorted[j].Date.Time)
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]model.PerformanceTrendPoint, 0, len(sorted))
	for _, m := range sorted {
		var kills, deaths, assists int
		for _, st := range byMatch[m.ID] {
			kills += st.Kills
			deaths += st.Deaths
			assists += st.Assists
		}
		out = append(out, model.PerformanceTrendPoint{
			Date:     m.Date,
			MatchID:  m.ID,
			Won:      m.WonBy(teamID),
			Opponent: opponent(m),
			KDA:      kdaOf(kills, deaths, assists),
		})
	}
	return out
}
