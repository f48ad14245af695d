package stats

import (
	"slices"

	"github.com/mauv0809/club-ranker/internal/club"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ranked is a player's position on a leaderboard or shortlist.
type Ranked struct {
	Rank   int         `json:"rank"`
	Player club.Player `json:"player"`
	Stats  WindowStats `json:"stats"`
}

// RankPlayers computes window stats for every player and orders them best
// first: win percentage, then window wins, then name. Players without games
// in the window come last. Fully tied players keep their input order.
func RankPlayers(players []club.Player, windowSize int) []Ranked {
	ranked := make([]Ranked, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, Ranked{
			Player: p,
			Stats:  ComputeWindowStats(p.SessionHistory, windowSize),
		})
	}

	// A Collator keeps internal buffers, so each call gets its own.
	names := collate.New(language.Und)
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return compareRanked(names, a, b)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func compareRanked(names *collate.Collator, a, b Ranked) int {
	if c := b.Stats.WinPct.Compare(a.Stats.WinPct); c != 0 {
		return c
	}
	if a.Stats.Wins != b.Stats.Wins {
		if a.Stats.Wins > b.Stats.Wins {
			return -1
		}
		return 1
	}
	return names.CompareString(a.Player.Name, b.Player.Name)
}
