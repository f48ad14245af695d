package stats_test

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func july(d int) time.Time {
	return time.Date(2024, time.July, d, 18, 0, 0, 0, time.UTC)
}

func aliceHistory() []club.SessionRecord {
	return []club.SessionRecord{
		{SessionID: "s1", Wins: 5, Games: 10, Date: july(1)},
		{SessionID: "s2", Wins: 7, Games: 12, Date: july(2)},
		{SessionID: "s3", Wins: 6, Games: 10, Date: july(3)},
		{SessionID: "s4", Wins: 8, Games: 15, Date: july(4)},
	}
}

func TestComputeWindowStats_MostRecentThree(t *testing.T) {
	ws := stats.ComputeWindowStats(aliceHistory(), 3)

	assert.Equal(t, 21, ws.Wins)
	assert.Equal(t, 37, ws.Games)
	require.True(t, ws.WinPct.IsDefined())
	assert.Equal(t, int64(5676), ws.WinPct.Hundredths())
	assert.InDelta(t, 56.76, ws.WinPct.Value(), 1e-9)
	assert.Equal(t, "56.76%", ws.WinPct.String())
}

func TestComputeWindowStats_DoesNotMutateInput(t *testing.T) {
	history := aliceHistory()
	before := slices.Clone(history)

	stats.ComputeWindowStats(history, 3)

	assert.Equal(t, before, history)
}

func TestComputeWindowStats_FewerRecordsThanWindow(t *testing.T) {
	history := []club.SessionRecord{
		{SessionID: "s1", Wins: 3, Games: 10, Date: july(1)},
		{SessionID: "s2", Wins: 5, Games: 10, Date: july(2)},
	}
	ws := stats.ComputeWindowStats(history, 3)
	assert.Equal(t, 8, ws.Wins)
	assert.Equal(t, 20, ws.Games)
	assert.Equal(t, "40.00%", ws.WinPct.String())
}

func TestComputeWindowStats_Undefined(t *testing.T) {
	tests := []struct {
		name    string
		history []club.SessionRecord
		window  int
	}{
		{"empty history", nil, 3},
		{"only unplayed sessions", []club.SessionRecord{{SessionID: "s1", Date: july(1)}}, 3},
		{"zero window", aliceHistory(), 0},
		{"negative window", aliceHistory(), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := stats.ComputeWindowStats(tt.history, tt.window)
			assert.False(t, ws.WinPct.IsDefined())
			assert.Equal(t, "N/A", ws.WinPct.String())
			assert.Zero(t, ws.Games)
		})
	}
}

func TestComputeWindowStats_ZeroWinsIsDefined(t *testing.T) {
	ws := stats.ComputeWindowStats([]club.SessionRecord{{SessionID: "s1", Wins: 0, Games: 4, Date: july(1)}}, 3)
	require.True(t, ws.WinPct.IsDefined())
	assert.Equal(t, "0.00%", ws.WinPct.String())
}

func TestComputeWindowStats_EqualDatesKeepInputOrder(t *testing.T) {
	history := []club.SessionRecord{
		{SessionID: "a", Wins: 1, Games: 1, Date: july(5)},
		{SessionID: "b", Wins: 0, Games: 1, Date: july(5)},
		{SessionID: "c", Wins: 0, Games: 1, Date: july(1)},
	}
	// Window of one takes "a", the first of the two most recent records.
	ws := stats.ComputeWindowStats(history, 1)
	assert.Equal(t, 1, ws.Wins)
	assert.Equal(t, 1, ws.Games)
}

func TestComputeWindowStats_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		wins, games int
		want        string
	}{
		{1, 32, "3.13%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{1, 8, "12.50%"},
		{4, 4, "100.00%"},
	}
	for _, tt := range tests {
		ws := stats.ComputeWindowStats([]club.SessionRecord{{SessionID: "s", Wins: tt.wins, Games: tt.games, Date: july(1)}}, 3)
		assert.Equal(t, tt.want, ws.WinPct.String(), "%d/%d", tt.wins, tt.games)
	}
}

func TestComputeWindowStats_LargeTallies(t *testing.T) {
	tests := []struct {
		wins, games int
		want        int64
	}{
		{1_000_000, 1_000_000, 10000},
		{1_000_000_000_000_000, 1_000_000_000_000_000, 10000},
		{1_000_000_000_000_000, 3_000_000_000_000_000, 3333},
		{2_000_000_000_000_000, 3_000_000_000_000_000, 6667},
	}
	for _, tt := range tests {
		ws := stats.ComputeWindowStats([]club.SessionRecord{{SessionID: "s", Wins: tt.wins, Games: tt.games, Date: july(1)}}, 3)
		assert.Equal(t, tt.want, ws.WinPct.Hundredths(), "%d/%d", tt.wins, tt.games)
	}
}

func randomHistory(r *rand.Rand) []club.SessionRecord {
	n := r.IntN(8)
	history := make([]club.SessionRecord, n)
	for i := range history {
		games := r.IntN(20)
		wins := 0
		if games > 0 {
			wins = r.IntN(games + 1)
		}
		history[i] = club.SessionRecord{
			SessionID: "s",
			Wins:      wins,
			Games:     games,
			Date:      july(1 + r.IntN(5)),
		}
	}
	return history
}

func TestComputeWindowStats_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for range 500 {
		history := randomHistory(r)
		window := 1 + r.IntN(5)

		ws := stats.ComputeWindowStats(history, window)
		if ws.Games > 0 {
			assert.LessOrEqual(t, ws.Wins, ws.Games)
			assert.True(t, ws.WinPct.IsDefined())
			assert.LessOrEqual(t, ws.WinPct.Hundredths(), int64(10000))
		} else {
			assert.False(t, ws.WinPct.IsDefined())
		}

		sorted := slices.Clone(history)
		slices.SortStableFunc(sorted, func(a, b club.SessionRecord) int { return b.Date.Compare(a.Date) })
		assert.Equal(t, ws, stats.ComputeWindowStats(sorted, window), "windowing a sorted history must be idempotent")
	}
}

func TestWindowStats_JSON(t *testing.T) {
	data, err := json.Marshal(stats.ComputeWindowStats(aliceHistory(), 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"wins":21,"games":37,"win_pct":56.76}`, string(data))

	data, err = json.Marshal(stats.ComputeWindowStats(nil, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"wins":0,"games":0,"win_pct":null}`, string(data))

	var decoded stats.WindowStats
	require.NoError(t, json.Unmarshal([]byte(`{"wins":21,"games":37,"win_pct":56.76}`), &decoded))
	assert.Equal(t, stats.Defined(5676), decoded.WinPct)
	require.NoError(t, json.Unmarshal([]byte(`{"wins":0,"games":0,"win_pct":null}`), &decoded))
	assert.False(t, decoded.WinPct.IsDefined())
}
