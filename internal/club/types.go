package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// memoryStore keeps the roster in process memory. It is the default backend.
type memoryStore struct {
	mu       sync.RWMutex
	players  []Player
	sessions []Session
}

// Player is a club member and their per-session tallies.
type Player struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PlayerNumber   string          `json:"player_number"`
	IsClubAdmin    bool            `json:"is_club_admin"`
	SessionHistory []SessionRecord `json:"session_history"`
}

// Session is a scheduled club night.
type Session struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// SessionRecord holds a player's wins and games for one session. Date is a
// copy of the session's date at the time the record was written.
type SessionRecord struct {
	SessionID string    `json:"session_id"`
	Wins      int       `json:"wins"`
	Games     int       `json:"games"`
	Date      time.Time `json:"date"`
}

func (p Player) clone() Player {
	c := p
	c.SessionHistory = make([]SessionRecord, len(p.SessionHistory))
	copy(c.SessionHistory, p.SessionHistory)
	return c
}
