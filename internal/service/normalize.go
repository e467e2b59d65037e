package service

import "github.com/scrimtrack/scrim-stats-service/internal/model"

// Normalization is the single defaulting pass run on any summary before it
// is cached or returned, whether it came from the backend or the local
// aggregator. After it, every list is non-nil and every string has a
// renderable default, so consumers never branch on missing fields.

func normalizeTeamSummary(s model.TeamStatisticsSummary) model.TeamStatisticsSummary {
	if s.AvgMatchDuration == "" {
		s.AvgMatchDuration = zeroClock
	}
	if s.HeroPickFrequency == nil {
		s.HeroPickFrequency = []model.HeroPickStat{}
	}
	if s.DamageDistribution == nil {
		s.DamageDistribution = []model.DistributionEntry{}
	}
	if s.GoldDistribution == nil {
		s.GoldDistribution = []model.DistributionEntry{}
	}
	if s.VisionDistribution == nil {
		s.VisionDistribution = []model.DistributionEntry{}
	}
	if s.PlayerStatistics == nil {
		s.PlayerStatistics = []model.PlayerStatisticsSummary{}
	}
	for i, ps := range s.PlayerStatistics {
		s.PlayerStatistics[i] = normalizePlayerSummary(ps)
	}
	if s.RecentMatches == nil {
		s.RecentMatches = []model.RecentMatch{}
	}
	if s.PerformanceTrend == nil {
		s.PerformanceTrend = []model.PerformanceTrendPoint{}
	}
	return s
}

func normalizePlayerSummary(s model.PlayerStatisticsSummary) model.PlayerStatisticsSummary {
	if s.FavoriteHeroes == nil {
		s.FavoriteHeroes = []model.HeroPickStat{}
	}
	if s.RecentMatches == nil {
		s.RecentMatches = []model.RecentMatch{}
	}
	return s
}
