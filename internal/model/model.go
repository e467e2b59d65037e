// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Scrim categories the backend records for a match.
const (
	ScrimTypePractice   = "PRACTICE"
	ScrimTypeTournament = "TOURNAMENT"
	ScrimTypeRanked     = "RANKED"
)

// Match outcomes from the perspective of the team a summary is built for.
const (
	OutcomeVictory = "VICTORY"
	OutcomeDefeat  = "DEFEAT"
)

// Date wraps time.Time because the backend serializes match dates as plain
// "YYYY-MM-DD" while some endpoints emit full RFC 3339 timestamps.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

// Team represents a scrim team, either our own or an opponent.
type Team struct {
	ID           int64  `json:"team_id"`
	Name         string `json:"team_name"`
	Abbreviation string `json:"team_abbreviation"`
	Category     string `json:"team_category"`
}

// Player represents an athlete identified by their current in-game name.
type Player struct {
	ID          int64  `json:"player_id"`
	IGN         string `json:"current_ign"`
	PrimaryRole string `json:"primary_role"`
}

// DisplayName returns something renderable even for sparse player rows.
func (p Player) DisplayName() string {
	if s := strings.TrimSpace(p.IGN); s != "" {
		return s
	}
	return fmt.Sprintf("Player %d", p.ID)
}

// MatchRecord is a single scrim match as the backend reports it.
// Read-only input from the aggregator's viewpoint.
type MatchRecord struct {
	ID             int64  `json:"match_id"`
	Date           Date   `json:"match_date"`
	BlueSideTeamID int64  `json:"blue_side_team_id"`
	RedSideTeamID  int64  `json:"red_side_team_id"`
	WinningTeamID  *int64 `json:"winning_team_id"`
	// Duration is "H:MM:SS"; empty when the match was logged without one.
	Duration  string `json:"match_duration"`
	ScrimType string `json:"scrim_type"`
	// Side details are embedded by list endpoints when available.
	BlueSideTeam *Team `json:"blue_side_team_details,omitempty"`
	RedSideTeam  *Team `json:"red_side_team_details,omitempty"`
}

// Involves reports whether teamID played on either side.
func (m MatchRecord) Involves(teamID int64) bool {
	return m.BlueSideTeamID == teamID || m.RedSideTeamID == teamID
}

// WonBy reports whether the match was decided in favor of teamID.
func (m MatchRecord) WonBy(teamID int64) bool {
	return m.WinningTeamID != nil && *m.WinningTeamID == teamID
}

// Opponent returns the id of the side teamID did not play for, along with
// the embedded team details when the backend included them.
func (m MatchRecord) Opponent(teamID int64) (int64, *Team) {
	if m.BlueSideTeamID == teamID {
		return m.RedSideTeamID, m.RedSideTeam
	}
	return m.BlueSideTeamID, m.BlueSideTeam
}

// PlayerMatchStat is one player's line for one match.
type PlayerMatchStat struct {
	ID       int64 `json:"stats_id"`
	MatchID  int64 `json:"match_id"`
	PlayerID int64 `json:"player_id"`
	// TeamID is the side the player played for; must equal one of the
	// match's two team ids.
	TeamID  int64 `json:"team_id"`
	Kills   int   `json:"kills"`
	Deaths  int   `json:"deaths"`
	Assists int   `json:"assists"`
	// Optional metrics; nil when the form left them blank.
	DamageDealt *float64 `json:"damage_dealt"`
	DamageTaken *float64 `json:"damage_taken"`
	GoldEarned  *float64 `json:"gold_earned"`
	VisionScore *float64 `json:"teamfight_participation"`
	Hero        HeroRef  `json:"hero_played"`
	// HeroName is a legacy free-text column kept as a display fallback.
	HeroName string `json:"hero_name"`
}

// HeroPickStat is one row of a hero pick frequency table.
type HeroPickStat struct {
	HeroID   int64   `json:"hero_id"`
	HeroName string  `json:"hero_name"`
	Picks    int     `json:"picks"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"winrate"`
}

// DistributionEntry expresses one player's share of a team resource metric.
type DistributionEntry struct {
	PlayerID     int64   `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	AverageValue float64 `json:"average_value"`
	Percentage   float64 `json:"percentage"`
}

// PerformanceTrendPoint is one match on a team's chronological trend line.
type PerformanceTrendPoint struct {
	Date     Date    `json:"date"`
	MatchID  int64   `json:"match_id"`
	Won      bool    `json:"won"`
	Opponent string  `json:"opponent"`
	KDA      float64 `json:"kda"`
}

// RecentMatch is a condensed match row for "last N games" panels.
type RecentMatch struct {
	MatchID   int64  `json:"match_id"`
	Date      Date   `json:"match_date"`
	ScrimType string `json:"scrim_type"`
	Outcome   string `json:"match_outcome"`
	Opponent  string `json:"opponent"`
}

// TeamStatisticsSummary holds everything a team dashboard renders.
// Every numeric field defaults to 0 and every list to empty so consumers
// can render unconditionally; the normalization pass in service enforces it.
type TeamStatisticsSummary struct {
	TotalMatches       int                 `json:"total_matches"`
	Wins               int                 `json:"wins"`
	Losses             int                 `json:"losses"`
	WinRate            float64             `json:"winrate"`
	AvgMatchDuration   string              `json:"avg_match_duration"`
	AvgTeamKDA         float64             `json:"avg_team_kda"`
	AvgKillsPerMatch   float64             `json:"avg_kills_per_match"`
	AvgDeathsPerMatch  float64             `json:"avg_deaths_per_match"`
	AvgAssistsPerMatch float64             `json:"avg_assists_per_match"`
	HeroPickFrequency  []HeroPickStat      `json:"hero_pick_frequency"`
	DamageDistribution []DistributionEntry `json:"damage_distribution"`
	GoldDistribution   []DistributionEntry `json:"gold_distribution"`
	VisionDistribution []DistributionEntry `json:"vision_distribution"`
	// ObjectiveControlRate stays 0 until the backend records objective data.
	ObjectiveControlRate float64                   `json:"objective_control_rate"`
	PlayerStatistics     []PlayerStatisticsSummary `json:"player_statistics"`
	RecentMatches        []RecentMatch             `json:"recent_matches"`
	PerformanceTrend     []PerformanceTrendPoint   `json:"performance_trend"`
}

// PlayerStatisticsSummary holds a player's performance within one team.
type PlayerStatisticsSummary struct {
	Player         Player         `json:"player"`
	TotalMatches   int            `json:"total_matches"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	WinRate        float64        `json:"winrate"`
	AvgKDA         float64        `json:"avg_kda"`
	AvgKills       float64        `json:"avg_kills"`
	AvgDeaths      float64        `json:"avg_deaths"`
	AvgAssists     float64        `json:"avg_assists"`
	AvgDamageDealt float64        `json:"avg_damage_dealt"`
	AvgGoldEarned  float64        `json:"avg_gold_earned"`
	AvgVisionScore float64        `json:"avg_vision_score"`
	FavoriteHeroes []HeroPickStat `json:"favorite_heroes"`
	RecentMatches  []RecentMatch  `json:"recent_matches"`
}
