package roster

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/pubsub"
	"github.com/mauv0809/club-ranker/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
	store   club.ClubStore
	metrics *metrics.Mock
	events  *pubsub.MockPubSubClient
	clock   *clockwork.FakeClock
}

func newFixture(t *testing.T, seeded bool) *fixture {
	t.Helper()
	f := &fixture{
		store:   club.NewMemoryStore(),
		metrics: metrics.NewMock(),
		events:  pubsub.NewMock(),
		clock:   clockwork.NewFakeClockAt(time.Date(2024, time.July, 5, 9, 0, 0, 0, time.UTC)),
	}
	if seeded {
		require.NoError(t, SeedDemo(f.store))
	}
	f.svc = New(f.store, f.metrics, f.events, f.clock, stats.DefaultWindowSize)
	n := 0
	f.svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return f
}

func rankedNames(ranked []stats.Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Player.Name
	}
	return out
}

func TestCreateSession(t *testing.T) {
	t.Run("blank name is rejected", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.svc.CreateSession("   ")
		assert.ErrorIs(t, err, club.ErrEmptyField)
		assert.Equal(t, 1, f.metrics.CommandsRejected("EMPTY_FIELD"))

		sessions, err := f.svc.Sessions()
		require.NoError(t, err)
		assert.Empty(t, sessions)
		assert.Empty(t, f.events.Sent())
	})

	t.Run("assigns id and current time, newest first", func(t *testing.T) {
		f := newFixture(t, false)

		first, err := f.svc.CreateSession(" Monday Ladder ")
		require.NoError(t, err)
		assert.Equal(t, "id-1", first.ID)
		assert.Equal(t, "Monday Ladder", first.Name)
		assert.True(t, f.clock.Now().Equal(first.Date))

		f.clock.Advance(24 * time.Hour)
		second, err := f.svc.CreateSession("Tuesday Ladder")
		require.NoError(t, err)

		sessions, err := f.svc.Sessions()
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, second.ID, sessions[0].ID)
		assert.Equal(t, first.ID, sessions[1].ID)

		assert.Equal(t, 2, f.metrics.SessionsCreated())
		sent := f.events.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, pubsub.EventSessionCreated, sent[0].Topic)
		assert.Equal(t, "Monday Ladder", sent[0].Data.(pubsub.SessionCreated).Name)
	})

	t.Run("publish failure keeps the session", func(t *testing.T) {
		f := newFixture(t, false)
		f.events.SendMessageFunc = func(topic pubsub.EventType, data any) error {
			return errors.New("pubsub unavailable")
		}

		_, err := f.svc.CreateSession("Friday Social")
		require.NoError(t, err)

		sessions, err := f.svc.Sessions()
		require.NoError(t, err)
		assert.Len(t, sessions, 1)
	})

	t.Run("works without an event publisher", func(t *testing.T) {
		svc := New(club.NewMemoryStore(), metrics.NewMock(), nil, clockwork.NewFakeClock(), 0)
		_, err := svc.CreateSession("Quiet Session")
		require.NoError(t, err)
		assert.Equal(t, stats.DefaultWindowSize, svc.WindowSize())
	})
}

func TestRemoveSession(t *testing.T) {
	t.Run("cascades to every player's history", func(t *testing.T) {
		f := newFixture(t, true)

		require.NoError(t, f.svc.RemoveSession("s2"))

		sessions, err := f.svc.Sessions()
		require.NoError(t, err)
		for _, s := range sessions {
			assert.NotEqual(t, "s2", s.ID)
		}
		assert.Len(t, sessions, 3)

		players, err := f.svc.Players()
		require.NoError(t, err)
		remaining := map[string]int{}
		for _, p := range players {
			for _, r := range p.SessionHistory {
				assert.NotEqual(t, "s2", r.SessionID)
			}
			remaining[p.ID] = len(p.SessionHistory)
		}
		assert.Equal(t, map[string]int{"p1": 3, "p2": 1, "p3": 1, "p4": 1, "p5": 0, "p6": 0}, remaining)

		alice, ws, err := f.svc.PlayerStats("p1")
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", alice.Name)
		assert.Equal(t, 19, ws.Wins)
		assert.Equal(t, 35, ws.Games)
		assert.Equal(t, "54.29%", ws.WinPct.String())

		_, bob, err := f.svc.PlayerStats("p2")
		require.NoError(t, err)
		assert.Equal(t, "30.00%", bob.WinPct.String())

		assert.Equal(t, 1, f.metrics.SessionsRemoved())
		sent := f.events.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, pubsub.EventSessionRemoved, sent[0].Topic)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		f := newFixture(t, true)

		require.NoError(t, f.svc.RemoveSession("nope"))
		require.NoError(t, f.svc.RemoveSession(""))

		sessions, err := f.svc.Sessions()
		require.NoError(t, err)
		assert.Len(t, sessions, 4)
		assert.Zero(t, f.metrics.SessionsRemoved())
		assert.Empty(t, f.events.Sent())
	})
}

func TestRecordSessionResult_Validation(t *testing.T) {
	tests := []struct {
		name      string
		playerID  string
		sessionID string
		wins      int
		games     int
		want      error
		reason    string
	}{
		{"missing player", "", "s1", 1, 2, club.ErrInvalidInput, "INVALID_INPUT"},
		{"missing session", "p1", " ", 1, 2, club.ErrInvalidInput, "INVALID_INPUT"},
		{"unknown player checked before tallies", "ghost", "s1", -1, 2, club.ErrNotFound, "NOT_FOUND"},
		{"unknown session", "p1", "ghost", 1, 2, club.ErrNotFound, "NOT_FOUND"},
		{"negative wins", "p1", "s1", -1, 2, club.ErrInvalidInput, "INVALID_INPUT"},
		{"negative games", "p1", "s1", 0, -2, club.ErrInvalidInput, "INVALID_INPUT"},
		{"negative games checked before wins exceeding games", "p1", "s1", 3, -2, club.ErrInvalidInput, "INVALID_INPUT"},
		{"wins exceed games", "p1", "s1", 11, 10, club.ErrWinsExceedGames, "WINS_EXCEED_GAMES"},
		{"games above cap", "p1", "s1", 1, MaxTally + 1, club.ErrInvalidInput, "INVALID_INPUT"},
		{"wins above cap", "p1", "s1", MaxTally + 1, MaxTally + 1, club.ErrInvalidInput, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)

			err := f.svc.RecordSessionResult(tt.playerID, tt.sessionID, tt.wins, tt.games)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, f.metrics.CommandsRejected(tt.reason))
			assert.Zero(t, f.metrics.ResultsRecorded())
			assert.Empty(t, f.events.Sent())

			rec, err := f.svc.SessionRecord("p1", "s1")
			require.NoError(t, err)
			assert.Equal(t, 5, rec.Wins, "a rejected result must leave the existing record alone")
			assert.Equal(t, 10, rec.Games)
		})
	}
}

func TestRecordSessionResult_DoesNotTouchStoreOnRejection(t *testing.T) {
	store := club.NewMock()
	store.GetPlayerFunc = func(id string) (*club.Player, error) {
		return &club.Player{ID: id, Name: "Alice Smith"}, nil
	}
	store.GetSessionFunc = func(id string) (*club.Session, error) {
		return &club.Session{ID: id, Name: "Monday"}, nil
	}
	svc := New(store, metrics.NewMock(), nil, clockwork.NewFakeClock(), 3)

	err := svc.RecordSessionResult("p1", "s1", 4, 3)
	assert.ErrorIs(t, err, club.ErrWinsExceedGames)
	assert.Empty(t, store.UpsertSessionRecordCalls)
}

func TestRecordSessionResult_Upserts(t *testing.T) {
	f := newFixture(t, true)
	f.clock.Advance(72 * time.Hour)

	require.NoError(t, f.svc.RecordSessionResult("p1", "s1", 9, 10))
	require.NoError(t, f.svc.RecordSessionResult("p5", "s4", 0, 0))
	require.NoError(t, f.svc.RecordSessionResult("p5", "s3", 2, 2))

	alice, err := f.svc.Player("p1")
	require.NoError(t, err)
	require.Len(t, alice.SessionHistory, 4, "overwriting must not append")
	assert.Equal(t, 9, alice.SessionHistory[0].Wins)

	session, err := f.svc.Session("s1")
	require.NoError(t, err)
	assert.True(t, session.Date.Equal(alice.SessionHistory[0].Date), "record date follows the session, not the clock")

	_, newbie, err := f.svc.PlayerStats("p5")
	require.NoError(t, err)
	assert.Equal(t, 2, newbie.Wins)
	assert.Equal(t, 2, newbie.Games)
	assert.Equal(t, "100.00%", newbie.WinPct.String())

	assert.Equal(t, 3, f.metrics.ResultsRecorded())
	sent := f.events.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, pubsub.EventResultRecorded, sent[0].Topic)
	assert.Equal(t, pubsub.ResultRecorded{
		PlayerID:  "p1",
		SessionID: "s1",
		Wins:      9,
		Games:     10,
		Date:      session.Date,
	}, sent[0].Data)
}

func TestRecordSessionTally(t *testing.T) {
	tests := []struct {
		name        string
		sessionID   string
		wins, games string
		want        error
		reason      string
	}{
		{"numeric text", "s4", " 9 ", "15", nil, ""},
		{"unknown session with non-numeric wins", "ghost", "abc", "5", club.ErrNotFound, "NOT_FOUND"},
		{"unknown session with blank wins", "ghost", "", "5", club.ErrNotFound, "NOT_FOUND"},
		{"non-numeric wins", "s4", "abc", "5", club.ErrInvalidInput, "INVALID_INPUT"},
		{"fractional wins", "s4", "7.5", "10", club.ErrInvalidInput, "INVALID_INPUT"},
		{"blank games", "s4", "1", " ", club.ErrInvalidInput, "INVALID_INPUT"},
		{"wins exceed games", "s4", "6", "5", club.ErrWinsExceedGames, "WINS_EXCEED_GAMES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)

			err := f.svc.RecordSessionTally("p1", tt.sessionID, tt.wins, tt.games)
			if tt.want == nil {
				require.NoError(t, err)
				rec, err := f.svc.SessionRecord("p1", "s4")
				require.NoError(t, err)
				assert.Equal(t, 9, rec.Wins)
				assert.Equal(t, 15, rec.Games)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, f.metrics.CommandsRejected(tt.reason))
			assert.Empty(t, f.events.Sent())
		})
	}
}

func TestAddPlayer(t *testing.T) {
	t.Run("duplicate number is rejected", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := f.svc.AddPlayer("Alice Again", "101", false)
		assert.ErrorIs(t, err, club.ErrDuplicatePlayerNumber)
		assert.Equal(t, 1, f.metrics.CommandsRejected("DUPLICATE_PLAYER_NUMBER"))

		players, err := f.svc.Players()
		require.NoError(t, err)
		assert.Len(t, players, 6)
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.svc.AddPlayer("", "200", false)
		assert.ErrorIs(t, err, club.ErrEmptyField)
		_, err = f.svc.AddPlayer("Dana", "  ", false)
		assert.ErrorIs(t, err, club.ErrEmptyField)
		assert.Equal(t, 2, f.metrics.CommandsRejected("EMPTY_FIELD"))
	})

	t.Run("new player starts with no history", func(t *testing.T) {
		f := newFixture(t, false)

		p, err := f.svc.AddPlayer(" Dana Scully ", "200", true)
		require.NoError(t, err)
		assert.Equal(t, "id-1", p.ID)
		assert.Equal(t, "Dana Scully", p.Name)
		assert.True(t, p.IsClubAdmin)
		assert.Empty(t, p.SessionHistory)

		found, err := f.svc.FindPlayerByNumber("200")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, 1, f.metrics.PlayersAdded())

		sent := f.events.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, pubsub.EventPlayerAdded, sent[0].Topic)
	})
}

func TestRemovePlayer(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.svc.RemovePlayer("p2"))
	require.NoError(t, f.svc.RemovePlayer("p2"))

	_, err := f.svc.Player("p2")
	assert.ErrorIs(t, err, club.ErrNotFound)
	assert.Equal(t, 1, f.metrics.PlayersRemoved())
	assert.Len(t, f.events.Sent(), 1)
}

func TestFindPlayerByNumber(t *testing.T) {
	f := newFixture(t, true)

	admin, err := f.svc.FindPlayerByNumber(" 015 ")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", admin.Name)
	assert.True(t, admin.IsClubAdmin)

	_, err = f.svc.FindPlayerByNumber("")
	assert.ErrorIs(t, err, club.ErrEmptyField)

	_, err = f.svc.FindPlayerByNumber("999")
	assert.ErrorIs(t, err, club.ErrNotFound)

	assert.Zero(t, f.metrics.CommandsRejected("EMPTY_FIELD"))
	assert.Zero(t, f.metrics.CommandsRejected("NOT_FOUND"), "failed logins are not rejected commands")
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t, true)

	ranked, err := f.svc.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie Brown", "Alice Smith", "Admin User", "Bob Johnson", "Charvi Patel", "Newbie Player"}, rankedNames(ranked))
	assert.Equal(t, "56.76%", ranked[1].Stats.WinPct.String())
	assert.Equal(t, 1, f.metrics.RankingObservations())
}

func TestLeaderboard_EmptyClub(t *testing.T) {
	f := newFixture(t, false)

	ranked, err := f.svc.Leaderboard()
	require.NoError(t, err)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestShortlist(t *testing.T) {
	t.Run("ranks the chosen players only", func(t *testing.T) {
		f := newFixture(t, true)

		shortlist, err := f.svc.Shortlist("s4", []string{"p5", "p1", "p2", "p1", "ghost"})
		require.NoError(t, err)
		require.NotNil(t, shortlist.Session)
		assert.Equal(t, "July 4th Late Session", shortlist.Session.Name)
		assert.Equal(t, []string{"Alice Smith", "Bob Johnson", "Newbie Player"}, rankedNames(shortlist.Entries))
		assert.Equal(t, 3, shortlist.Entries[2].Rank)
	})

	t.Run("session is optional", func(t *testing.T) {
		f := newFixture(t, true)

		shortlist, err := f.svc.Shortlist("", []string{"p3"})
		require.NoError(t, err)
		assert.Nil(t, shortlist.Session)
		assert.Len(t, shortlist.Entries, 1)
	})

	t.Run("unknown session is rejected", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := f.svc.Shortlist("ghost", []string{"p1"})
		assert.ErrorIs(t, err, club.ErrNotFound)
	})

	t.Run("empty selection yields an empty list", func(t *testing.T) {
		f := newFixture(t, true)

		shortlist, err := f.svc.Shortlist("", nil)
		require.NoError(t, err)
		assert.NotNil(t, shortlist.Entries)
		assert.Empty(t, shortlist.Entries)
	})
}

func TestSearchPlayer(t *testing.T) {
	f := newFixture(t, true)

	p, ws, err := f.svc.SearchPlayer("CHARL")
	require.NoError(t, err)
	assert.Equal(t, "Charlie Brown", p.Name)
	assert.Equal(t, "83.33%", ws.WinPct.String())

	p, _, err = f.svc.SearchPlayer("charvi patel")
	require.NoError(t, err)
	assert.Equal(t, "p6", p.ID)

	_, _, err = f.svc.SearchPlayer("zzz")
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, _, err = f.svc.SearchPlayer(" ")
	assert.ErrorIs(t, err, club.ErrEmptyField)
}

func TestSuggestPlayers(t *testing.T) {
	f := newFixture(t, true)

	suggestions, err := f.svc.SuggestPlayers("Charly Brwn")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Charlie Brown", suggestions[0].Name)
	assert.LessOrEqual(t, len(suggestions), 3)

	suggestions, err = f.svc.SuggestPlayers("xyz")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
