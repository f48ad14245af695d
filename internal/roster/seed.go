package roster

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
)

// DemoSessions are the four sessions of the demo roster.
func DemoSessions() []club.Session {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.July, day, hour, 0, 0, 0, time.UTC)
	}
	return []club.Session{
		{ID: "s1", Name: "July 1st Evening Session", Date: at(1, 18)},
		{ID: "s2", Name: "July 2nd Morning Session", Date: at(2, 10)},
		{ID: "s3", Name: "July 3rd Afternoon Session", Date: at(3, 15)},
		{ID: "s4", Name: "July 4th Late Session", Date: at(4, 20)},
	}
}

// DemoPlayers are the demo club members. Player "015" is the club admin.
func DemoPlayers() []club.Player {
	dates := make(map[string]time.Time)
	for _, s := range DemoSessions() {
		dates[s.ID] = s.Date
	}
	rec := func(sessionID string, wins, games int) club.SessionRecord {
		return club.SessionRecord{SessionID: sessionID, Wins: wins, Games: games, Date: dates[sessionID]}
	}
	return []club.Player{
		{ID: "p1", Name: "Alice Smith", PlayerNumber: "101", SessionHistory: []club.SessionRecord{
			rec("s1", 5, 10), rec("s2", 7, 12), rec("s3", 6, 10), rec("s4", 8, 15),
		}},
		{ID: "p2", Name: "Bob Johnson", PlayerNumber: "102", SessionHistory: []club.SessionRecord{
			rec("s1", 3, 10), rec("s2", 5, 10),
		}},
		{ID: "p3", Name: "Charlie Brown", PlayerNumber: "103", SessionHistory: []club.SessionRecord{
			rec("s1", 10, 12),
		}},
		{ID: "p4", Name: "Admin User", PlayerNumber: "015", IsClubAdmin: true, SessionHistory: []club.SessionRecord{
			rec("s1", 5, 10), rec("s2", 3, 5),
		}},
		{ID: "p5", Name: "Newbie Player", PlayerNumber: "104", SessionHistory: []club.SessionRecord{}},
		{ID: "p6", Name: "Charvi Patel", PlayerNumber: "283", SessionHistory: []club.SessionRecord{}},
	}
}

// SeedDemo loads the demo roster into an empty store. Sessions go first so
// the players' records always reference an existing session.
func SeedDemo(store Store) error {
	for _, session := range DemoSessions() {
		if err := store.AddSession(session); err != nil {
			return fmt.Errorf("seed session %s: %w", session.ID, err)
		}
	}
	for _, player := range DemoPlayers() {
		if err := store.AddPlayer(player); err != nil {
			return fmt.Errorf("seed player %s: %w", player.ID, err)
		}
	}
	log.Info("Seeded demo roster", "players", len(DemoPlayers()), "sessions", len(DemoSessions()))
	return nil
}
