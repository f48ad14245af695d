package roster

import "github.com/mauv0809/club-ranker/internal/club"

// Store defines the club store operations the roster service needs.
type Store interface {
	AddPlayer(player club.Player) error
	RemovePlayer(playerID string) (bool, error)
	GetPlayer(playerID string) (*club.Player, error)
	FindPlayerByNumber(playerNumber string) (*club.Player, error)
	GetAllPlayers() ([]club.Player, error)
	GetPlayers(playerIDs []string) ([]club.Player, error)
	AddSession(session club.Session) error
	GetSession(sessionID string) (*club.Session, error)
	GetAllSessions() ([]club.Session, error)
	RemoveSession(sessionID string) (bool, error)
	UpsertSessionRecord(playerID string, record club.SessionRecord) error
	GetSessionRecord(playerID, sessionID string) (*club.SessionRecord, error)
}
