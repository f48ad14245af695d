package stats_test

import (
	"math/rand/v2"
	"testing"

	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoPlayers() []club.Player {
	return []club.Player{
		{ID: "p1", Name: "Alice Smith", PlayerNumber: "101", SessionHistory: aliceHistory()},
		{ID: "p2", Name: "Bob Johnson", PlayerNumber: "102", SessionHistory: []club.SessionRecord{
			{SessionID: "s1", Wins: 3, Games: 10, Date: july(1)},
			{SessionID: "s2", Wins: 5, Games: 10, Date: july(2)},
		}},
		{ID: "p3", Name: "Charlie Brown", PlayerNumber: "103", SessionHistory: []club.SessionRecord{
			{SessionID: "s1", Wins: 10, Games: 12, Date: july(1)},
		}},
		{ID: "p4", Name: "Admin User", PlayerNumber: "015", IsClubAdmin: true, SessionHistory: []club.SessionRecord{
			{SessionID: "s1", Wins: 5, Games: 10, Date: july(1)},
			{SessionID: "s2", Wins: 3, Games: 5, Date: july(2)},
		}},
		{ID: "p5", Name: "Newbie Player", PlayerNumber: "104"},
		{ID: "p6", Name: "Charvi Patel", PlayerNumber: "283"},
	}
}

func names(ranked []stats.Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Player.Name
	}
	return out
}

func TestRankPlayers_DemoRoster(t *testing.T) {
	ranked := stats.RankPlayers(demoPlayers(), stats.DefaultWindowSize)

	assert.Equal(t, []string{
		"Charlie Brown", // 83.33%
		"Alice Smith",   // 56.76%
		"Admin User",    // 53.33%
		"Bob Johnson",   // 40.00%
		"Charvi Patel",  // N/A
		"Newbie Player", // N/A
	}, names(ranked))

	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, "83.33%", ranked[0].Stats.WinPct.String())
	assert.Equal(t, "53.33%", ranked[2].Stats.WinPct.String())
}

func TestRankPlayers_Empty(t *testing.T) {
	ranked := stats.RankPlayers(nil, 3)
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankPlayers_UndefinedAfterZeroPercent(t *testing.T) {
	players := []club.Player{
		{ID: "a", Name: "Aaron", PlayerNumber: "1"},
		{ID: "z", Name: "Zed", PlayerNumber: "2", SessionHistory: []club.SessionRecord{{SessionID: "s1", Wins: 0, Games: 6, Date: july(1)}}},
	}
	ranked := stats.RankPlayers(players, 3)
	assert.Equal(t, []string{"Zed", "Aaron"}, names(ranked))
}

func TestRankPlayers_TwoEmptyHistoriesAreAlphabetical(t *testing.T) {
	players := []club.Player{
		{ID: "p2", Name: "Zoe", PlayerNumber: "2"},
		{ID: "p1", Name: "Yann", PlayerNumber: "1"},
	}
	ranked := stats.RankPlayers(players, 3)
	assert.Equal(t, []string{"Yann", "Zoe"}, names(ranked))
}

func TestRankPlayers_WinsBreakPercentageTies(t *testing.T) {
	players := []club.Player{
		{ID: "p1", Name: "Alpha", PlayerNumber: "1", SessionHistory: []club.SessionRecord{{SessionID: "s1", Wins: 1, Games: 2, Date: july(1)}}},
		{ID: "p2", Name: "Beta", PlayerNumber: "2", SessionHistory: []club.SessionRecord{{SessionID: "s1", Wins: 4, Games: 8, Date: july(1)}}},
	}
	ranked := stats.RankPlayers(players, 3)
	assert.Equal(t, []string{"Beta", "Alpha"}, names(ranked))
}

func TestRankPlayers_NamesAreLocaleAware(t *testing.T) {
	players := []club.Player{
		{ID: "p1", Name: "Zoe", PlayerNumber: "1"},
		{ID: "p2", Name: "Émile", PlayerNumber: "2"},
		{ID: "p3", Name: "bob", PlayerNumber: "3"},
	}
	ranked := stats.RankPlayers(players, 3)
	assert.Equal(t, []string{"bob", "Émile", "Zoe"}, names(ranked))
}

func TestRankPlayers_FullTiesKeepInputOrder(t *testing.T) {
	history := []club.SessionRecord{{SessionID: "s1", Wins: 2, Games: 4, Date: july(1)}}
	players := []club.Player{
		{ID: "first", Name: "Sam Lee", PlayerNumber: "1", SessionHistory: history},
		{ID: "second", Name: "Sam Lee", PlayerNumber: "2", SessionHistory: history},
	}
	ranked := stats.RankPlayers(players, 3)
	assert.Equal(t, "first", ranked[0].Player.ID)
	assert.Equal(t, "second", ranked[1].Player.ID)
}

func TestRankPlayers_UsesWindow(t *testing.T) {
	players := demoPlayers()
	ranked := stats.RankPlayers(players[:1], 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 8, ranked[0].Stats.Wins)
	assert.Equal(t, 15, ranked[0].Stats.Games)
}

func TestRankPlayers_HigherPercentageAlwaysFirst(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 99))
	for range 100 {
		players := make([]club.Player, 1+r.IntN(8))
		for i := range players {
			players[i] = club.Player{ID: string(rune('a' + i)), Name: string(rune('A' + r.IntN(26))), SessionHistory: randomHistory(r)}
		}
		ranked := stats.RankPlayers(players, 3)
		require.Len(t, ranked, len(players))

		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1].Stats.WinPct, ranked[i].Stats.WinPct
			assert.GreaterOrEqual(t, prev.Compare(cur), 0, "%s ranked above %s", prev, cur)
			if !prev.IsDefined() {
				assert.False(t, cur.IsDefined(), "a defined percentage followed N/A")
			}
		}
	}
}
