package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
)

// zeroClock is what dashboards show when no match carried a duration.
const zeroClock = "0:00:00"

// parseClock parses a "H:MM:SS" match duration into seconds. Malformed
// values report ok=false and the match is excluded from averaging.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, false
	}
	var secs int
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		secs = secs*60 + n
	}
	return secs, true
}

// formatClock renders seconds as "H:MM:SS" with hours unpadded.
func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// averageDuration averages the durations of matches that have one.
// Matches without a recorded duration are excluded from the denominator,
// not treated as zero.
func averageDuration(matches []model.MatchRecord) string {
	total, counted := 0, 0
	for _, m := range matches {
		if m.Duration == "" {
			continue
		}
		secs, ok := parseClock(m.Duration)
		if !ok {
			continue
		}
		total += secs
		counted++
	}
	if counted == 0 {
		return zeroClock
	}
	return formatClock(total / counted)
}
