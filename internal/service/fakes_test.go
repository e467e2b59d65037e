package service_test

import (
	"context"
	"sync/atomic"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

// Fakes implementing the repository contracts, shared by the aggregator and
// statistics service tests.

type fakeMatchRepo struct {
	matches []model.MatchRecord
	err     error
	// block, when non-nil, parks ListAll until the channel is closed.
	block chan struct{}
	calls atomic.Int64
}

func (f *fakeMatchRepo) ListAll(_ context.Context) ([]model.MatchRecord, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

type fakeStatsRepo struct {
	byMatch map[int64][]model.PlayerMatchStat
	failFor map[int64]error
}

func (f *fakeStatsRepo) ListByMatch(_ context.Context, matchID int64) ([]model.PlayerMatchStat, error) {
	if err, ok := f.failFor[matchID]; ok {
		return nil, err
	}
	return f.byMatch[matchID], nil
}

var _ repository.StatsRepository = (*fakeStatsRepo)(nil)

type fakePlayerRepo struct {
	players map[int64]model.Player
	fail    map[int64]error
	roster  []model.Player
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	if err, ok := f.fail[id]; ok {
		return model.Player{}, err
	}
	if p, ok := f.players[id]; ok {
		return p, nil
	}
	return model.Player{}, repository.ErrNotFound
}

func (f *fakePlayerRepo) ListByTeam(_ context.Context, _ int64) ([]model.Player, error) {
	return f.roster, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

type fakeTeamRepo struct {
	teams map[int64]model.Team
	calls atomic.Int64
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (model.Team, error) {
	f.calls.Add(1)
	if t, ok := f.teams[id]; ok {
		return t, nil
	}
	return model.Team{}, repository.ErrNotFound
}

var _ repository.TeamRepository = (*fakeTeamRepo)(nil)

type fakeSummaryRepo struct {
	teamSummary   model.TeamStatisticsSummary
	teamErr       error
	playerSummary model.PlayerStatisticsSummary
	playerErr     error
	teamCalls     atomic.Int64
	playerCalls   atomic.Int64
}

func (f *fakeSummaryRepo) TeamSummary(_ context.Context, _ int64) (model.TeamStatisticsSummary, error) {
	f.teamCalls.Add(1)
	if f.teamErr != nil {
		return model.TeamStatisticsSummary{}, f.teamErr
	}
	return f.teamSummary, nil
}

func (f *fakeSummaryRepo) PlayerSummary(_ context.Context, _, _ int64) (model.PlayerStatisticsSummary, error) {
	f.playerCalls.Add(1)
	if f.playerErr != nil {
		return model.PlayerStatisticsSummary{}, f.playerErr
	}
	return f.playerSummary, nil
}

var _ repository.SummaryRepository = (*fakeSummaryRepo)(nil)

func ptr(v float64) *float64 { return &v }
func id(v int64) *int64      { return &v }

// fixture is the canonical two-match scenario used across tests:
// team 10 wins M1 (0:45:00) and loses M2 (1:15:00) against team 20.
type fixture struct {
	matches *fakeMatchRepo
	stats   *fakeStatsRepo
	players *fakePlayerRepo
	teams   *fakeTeamRepo
}

func newFixture() *fixture {
	m1 := model.MatchRecord{
		ID:             1,
		Date:           model.NewDate(2025, 3, 1),
		BlueSideTeamID: 10,
		RedSideTeamID:  20,
		WinningTeamID:  id(10),
		Duration:       "0:45:00",
		ScrimType:      model.ScrimTypePractice,
	}
	m2 := model.MatchRecord{
		ID:             2,
		Date:           model.NewDate(2025, 3, 2),
		BlueSideTeamID: 20,
		RedSideTeamID:  10,
		WinningTeamID:  id(20),
		Duration:       "1:15:00",
		ScrimType:      model.ScrimTypeRanked,
	}
	// A match between two unrelated teams; must never contribute.
	m3 := model.MatchRecord{
		ID:             3,
		Date:           model.NewDate(2025, 3, 3),
		BlueSideTeamID: 30,
		RedSideTeamID:  40,
		WinningTeamID:  id(30),
		Duration:       "0:30:00",
		ScrimType:      model.ScrimTypePractice,
	}

	statsByMatch := map[int64][]model.PlayerMatchStat{
		1: {
			{
				MatchID: 1, PlayerID: 100, TeamID: 10,
				Kills: 5, Deaths: 2, Assists: 7,
				Hero: model.HeroRef{ID: 1, Valid: true}, HeroName: "Aurora",
				DamageDealt: ptr(30000), GoldEarned: ptr(10000), VisionScore: ptr(20),
			},
			{
				MatchID: 1, PlayerID: 101, TeamID: 10,
				Kills: 3, Deaths: 0, Assists: 10,
				Hero:        model.HeroRef{ID: 2, Name: "Blitz", Valid: true},
				DamageDealt: ptr(20000), GoldEarned: ptr(8000),
			},
			// Enemy row; filtered out by team id.
			{
				MatchID: 1, PlayerID: 200, TeamID: 20,
				Kills: 9, Deaths: 9, Assists: 9,
				Hero: model.HeroRef{ID: 9, Name: "Enemy", Valid: true},
			},
		},
		2: {
			{
				MatchID: 2, PlayerID: 100, TeamID: 10,
				Kills: 1, Deaths: 5, Assists: 2,
				Hero: model.HeroRef{ID: 1, Valid: true}, HeroName: "Aurora",
				DamageDealt: ptr(20000),
			},
			{
				MatchID: 2, PlayerID: 101, TeamID: 10,
				Kills: 2, Deaths: 4, Assists: 3,
				Hero:       model.HeroRef{ID: 3, Name: "Cass", Valid: true},
				GoldEarned: ptr(6000),
			},
		},
	}

	return &fixture{
		matches: &fakeMatchRepo{matches: []model.MatchRecord{m1, m2, m3}},
		stats:   &fakeStatsRepo{byMatch: statsByMatch, failFor: map[int64]error{}},
		players: &fakePlayerRepo{
			players: map[int64]model.Player{
				100: {ID: 100, IGN: "Nova", PrimaryRole: "Jungler"},
				101: {ID: 101, IGN: "Drift", PrimaryRole: "Support"},
			},
			fail: map[int64]error{},
		},
		teams: &fakeTeamRepo{teams: map[int64]model.Team{
			10: {ID: 10, Name: "Indigo"},
			20: {ID: 20, Name: "Crimson"},
		}},
	}
}
