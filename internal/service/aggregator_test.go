package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
	"github.com/scrimtrack/scrim-stats-service/internal/service"
)

func newAggregator(f *fixture) *service.Aggregator {
	return service.NewAggregator(f.matches, f.stats, f.players, f.teams, zerolog.Nop())
}

func TestAggregator_TeamSummary(t *testing.T) {
	f := newFixture()
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalMatches)
	assert.Equal(t, 1, got.Wins)
	assert.Equal(t, 1, got.Losses)
	assert.Equal(t, 2, got.Wins+got.Losses, "wins and losses must partition the matches")
	assert.InDelta(t, 50.0, got.WinRate, 1e-9)
	assert.Equal(t, "1:00:00", got.AvgMatchDuration)

	// 11 kills, 11 deaths, 22 assists across both matches.
	assert.InDelta(t, 3.0, got.AvgTeamKDA, 1e-9)
	assert.InDelta(t, 5.5, got.AvgKillsPerMatch, 1e-9)
	assert.InDelta(t, 5.5, got.AvgDeathsPerMatch, 1e-9)
	assert.InDelta(t, 11.0, got.AvgAssistsPerMatch, 1e-9)
	assert.Zero(t, got.ObjectiveControlRate)

	// Aurora picked twice (one win), Blitz and Cass once; ties break by name.
	require.Len(t, got.HeroPickFrequency, 3)
	assert.Equal(t, model.HeroPickStat{HeroID: 1, HeroName: "Aurora", Picks: 2, Wins: 1, WinRate: 50}, got.HeroPickFrequency[0])
	assert.Equal(t, "Blitz", got.HeroPickFrequency[1].HeroName)
	assert.InDelta(t, 100.0, got.HeroPickFrequency[1].WinRate, 1e-9)
	assert.Equal(t, "Cass", got.HeroPickFrequency[2].HeroName)
	assert.Zero(t, got.HeroPickFrequency[2].WinRate)

	// Damage: Nova averages 25000 over two recorded values, Drift 20000 over
	// one. Shares are of the sum of averages and must add up to 100.
	require.Len(t, got.DamageDistribution, 2)
	assert.Equal(t, "Nova", got.DamageDistribution[0].PlayerName)
	assert.InDelta(t, 25000.0, got.DamageDistribution[0].AverageValue, 1e-9)
	assert.InDelta(t, 100.0*25000/45000, got.DamageDistribution[0].Percentage, 1e-9)
	assert.Equal(t, "Drift", got.DamageDistribution[1].PlayerName)
	assert.InDelta(t, 100.0, got.DamageDistribution[0].Percentage+got.DamageDistribution[1].Percentage, 1e-9)

	// Vision was recorded for Nova only, so the whole pie is his.
	require.Len(t, got.VisionDistribution, 1)
	assert.Equal(t, int64(100), got.VisionDistribution[0].PlayerID)
	assert.InDelta(t, 100.0, got.VisionDistribution[0].Percentage, 1e-9)

	require.Len(t, got.PlayerStatistics, 2)
	nova := got.PlayerStatistics[0]
	assert.Equal(t, "Nova", nova.Player.DisplayName())
	assert.Equal(t, 2, nova.TotalMatches)
	assert.Equal(t, 1, nova.Wins)
	assert.InDelta(t, 15.0/7, nova.AvgKDA, 1e-9)
	assert.InDelta(t, 25000.0, nova.AvgDamageDealt, 1e-9)
	assert.InDelta(t, 10000.0, nova.AvgGoldEarned, 1e-9, "gold denominator counts recorded matches only")
	assert.InDelta(t, 20.0, nova.AvgVisionScore, 1e-9)

	drift := got.PlayerStatistics[1]
	assert.InDelta(t, 4.5, drift.AvgKDA, 1e-9)
	assert.InDelta(t, 7000.0, drift.AvgGoldEarned, 1e-9)
	assert.Zero(t, drift.AvgVisionScore)

	// Most recent first; opponent resolved through the team repository.
	require.Len(t, got.RecentMatches, 2)
	assert.Equal(t, int64(2), got.RecentMatches[0].MatchID)
	assert.Equal(t, model.OutcomeDefeat, got.RecentMatches[0].Outcome)
	assert.Equal(t, "Crimson", got.RecentMatches[0].Opponent)
	assert.Equal(t, model.OutcomeVictory, got.RecentMatches[1].Outcome)

	// Trend runs oldest to newest, one point per match.
	require.Len(t, got.PerformanceTrend, 2)
	assert.Equal(t, int64(1), got.PerformanceTrend[0].MatchID)
	assert.True(t, got.PerformanceTrend[0].Won)
	assert.InDelta(t, 12.5, got.PerformanceTrend[0].KDA, 1e-9)
	assert.False(t, got.PerformanceTrend[1].Won)
	assert.InDelta(t, 8.0/9, got.PerformanceTrend[1].KDA, 1e-9)

	// The opponent is the same team in both matches; the lookup is memoized.
	assert.Equal(t, int64(1), f.teams.calls.Load())
}

func TestAggregator_TeamSummary_NoMatches(t *testing.T) {
	f := newFixture()
	agg := newAggregator(f)

	_, err := agg.TeamSummary(context.Background(), 99)
	require.ErrorIs(t, err, service.ErrNoMatches)
}

func TestAggregator_TeamSummary_MatchListError(t *testing.T) {
	f := newFixture()
	f.matches.err = repository.ErrUnavailable
	agg := newAggregator(f)

	_, err := agg.TeamSummary(context.Background(), 10)
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestAggregator_TeamSummary_PartialStatsFailure(t *testing.T) {
	f := newFixture()
	f.stats.failFor[2] = repository.ErrUnavailable
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	// The match itself still counts toward the record even though its stat
	// lines were dropped.
	assert.Equal(t, 2, got.TotalMatches)
	assert.Equal(t, 1, got.Wins)

	// Only the first match's rows survive: 8 kills, 2 deaths, 17 assists.
	assert.InDelta(t, 12.5, got.AvgTeamKDA, 1e-9)
	assert.InDelta(t, 4.0, got.AvgKillsPerMatch, 1e-9)

	// Players only played the surviving match from the stats' point of view.
	require.Len(t, got.PlayerStatistics, 2)
	assert.Equal(t, 1, got.PlayerStatistics[0].TotalMatches)
	assert.Equal(t, 1, got.PlayerStatistics[0].Wins)

	// The dropped match contributes an empty trend point, not a gap.
	require.Len(t, got.PerformanceTrend, 2)
	assert.Zero(t, got.PerformanceTrend[1].KDA)
}

func TestAggregator_TeamSummary_ZeroDeaths(t *testing.T) {
	f := newFixture()
	f.stats.byMatch = map[int64][]model.PlayerMatchStat{
		1: {{MatchID: 1, PlayerID: 100, TeamID: 10, Kills: 4, Deaths: 0, Assists: 6,
			Hero: model.HeroRef{ID: 1, Name: "Aurora", Valid: true}}},
	}
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)
	// Deathless record: the ratio degrades to kills+assists.
	assert.InDelta(t, 10.0, got.AvgTeamKDA, 1e-9)
}

func TestAggregator_TeamSummary_PlayerFetchFailureSkipsPlayer(t *testing.T) {
	f := newFixture()
	f.players.fail[101] = repository.ErrUnavailable
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, got.PlayerStatistics, 1)
	assert.Equal(t, int64(100), got.PlayerStatistics[0].Player.ID)

	// Team-level aggregates still include the skipped player's stat rows.
	assert.InDelta(t, 3.0, got.AvgTeamKDA, 1e-9)
}

func TestAggregator_TeamSummary_InvalidHeroRowsSkipped(t *testing.T) {
	f := newFixture()
	f.stats.byMatch[1] = append(f.stats.byMatch[1], model.PlayerMatchStat{
		MatchID: 1, PlayerID: 100, TeamID: 10, Kills: 1,
		Hero: model.HeroRef{Name: "Freeform"}, // no resolvable id
	})
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	for _, hp := range got.HeroPickFrequency {
		assert.NotEqual(t, "Freeform", hp.HeroName)
	}
	// The row still counts toward combat totals: 12 kills now.
	assert.InDelta(t, 6.0, got.AvgKillsPerMatch, 1e-9)
}

func TestAggregator_TeamSummary_UnknownOpponent(t *testing.T) {
	f := newFixture()
	delete(f.teams.teams, 20)
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got.RecentMatches, 2)
	assert.Equal(t, "Unknown", got.RecentMatches[0].Opponent)
}

func TestAggregator_TeamSummary_EmbeddedOpponentDetails(t *testing.T) {
	f := newFixture()
	for i := range f.matches.matches {
		m := &f.matches.matches[i]
		if m.BlueSideTeamID == 20 {
			m.BlueSideTeam = &model.Team{ID: 20, Name: "Crimson Embedded"}
		}
		if m.RedSideTeamID == 20 {
			m.RedSideTeam = &model.Team{ID: 20, Name: "Crimson Embedded"}
		}
	}
	agg := newAggregator(f)

	got, err := agg.TeamSummary(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Crimson Embedded", got.RecentMatches[0].Opponent)
	// Embedded details short-circuit the lookup entirely.
	assert.Zero(t, f.teams.calls.Load())
}

func TestAggregator_PlayerSummary(t *testing.T) {
	f := newFixture()
	agg := newAggregator(f)

	got, err := agg.PlayerSummary(context.Background(), 101, 10)
	require.NoError(t, err)

	assert.Equal(t, "Drift", got.Player.DisplayName())
	assert.Equal(t, 2, got.TotalMatches)
	assert.Equal(t, 1, got.Wins)
	assert.InDelta(t, 50.0, got.WinRate, 1e-9)
	assert.InDelta(t, 4.5, got.AvgKDA, 1e-9)
	assert.InDelta(t, 2.5, got.AvgKills, 1e-9)
	assert.InDelta(t, 20000.0, got.AvgDamageDealt, 1e-9)
	assert.InDelta(t, 7000.0, got.AvgGoldEarned, 1e-9)

	require.Len(t, got.FavoriteHeroes, 2)
	assert.Equal(t, "Blitz", got.FavoriteHeroes[0].HeroName)
	assert.Equal(t, "Cass", got.FavoriteHeroes[1].HeroName)

	require.Len(t, got.RecentMatches, 2)
	assert.Equal(t, int64(2), got.RecentMatches[0].MatchID)
}

func TestAggregator_PlayerSummary_UnknownPlayer(t *testing.T) {
	f := newFixture()
	agg := newAggregator(f)

	_, err := agg.PlayerSummary(context.Background(), 555, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestAggregator_PlayerSummary_NoAppearances(t *testing.T) {
	f := newFixture()
	f.players.players[102] = model.Player{ID: 102, IGN: "Bench"}
	agg := newAggregator(f)

	got, err := agg.PlayerSummary(context.Background(), 102, 10)
	require.NoError(t, err)
	assert.Zero(t, got.TotalMatches)
	assert.Zero(t, got.WinRate)
	assert.Zero(t, got.AvgKDA)
	assert.Empty(t, got.RecentMatches)
}
