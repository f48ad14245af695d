package club

// ClubStore defines the interface for interacting with the club's roster.
// Every method is atomic with respect to the others.
type ClubStore interface {
	AddPlayer(player Player) error
	RemovePlayer(playerID string) (bool, error)
	GetPlayer(playerID string) (*Player, error)
	FindPlayerByNumber(playerNumber string) (*Player, error)
	GetAllPlayers() ([]Player, error)
	GetPlayers(playerIDs []string) ([]Player, error)

	AddSession(session Session) error
	GetSession(sessionID string) (*Session, error)
	GetAllSessions() ([]Session, error)
	// RemoveSession deletes the session together with every record that
	// references it. Unknown ids are a no-op and report false.
	RemoveSession(sessionID string) (bool, error)

	// UpsertSessionRecord is the only mutator of a player's session history.
	UpsertSessionRecord(playerID string, record SessionRecord) error
	GetSessionRecord(playerID, sessionID string) (*SessionRecord, error)

	Clear()
}
