package stats

import (
	"slices"

	"github.com/mauv0809/club-ranker/internal/club"
)

// DefaultWindowSize is the number of most recent sessions the leaderboard
// and the shortlist look at.
const DefaultWindowSize = 3

// WindowStats aggregates a player's most recent sessions.
type WindowStats struct {
	Wins   int    `json:"wins"`
	Games  int    `json:"games"`
	WinPct WinPct `json:"win_pct"`
}

// ComputeWindowStats sums wins and games over the windowSize most recent
// records of history. Records with equal dates keep their input order. The
// input slice is not modified. A window with no games yields Undefined.
func ComputeWindowStats(history []club.SessionRecord, windowSize int) WindowStats {
	if windowSize <= 0 || len(history) == 0 {
		return WindowStats{WinPct: Undefined()}
	}

	recent := slices.Clone(history)
	slices.SortStableFunc(recent, func(a, b club.SessionRecord) int {
		return b.Date.Compare(a.Date)
	})
	if len(recent) > windowSize {
		recent = recent[:windowSize]
	}

	var ws WindowStats
	for _, r := range recent {
		ws.Wins += r.Wins
		ws.Games += r.Games
	}
	if ws.Games > 0 {
		ws.WinPct = percentOf(ws.Wins, ws.Games)
	}
	return ws
}
