package club

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// NewMemoryStore creates a ClubStore that keeps everything in memory.
func NewMemoryStore() ClubStore {
	return &memoryStore{}
}

func (s *memoryStore) AddPlayer(player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if p.PlayerNumber == player.PlayerNumber {
			return fmt.Errorf("player number %q: %w", player.PlayerNumber, ErrDuplicatePlayerNumber)
		}
	}
	s.players = append(s.players, player.clone())
	log.Debug("Added player to memory store", "playerID", player.ID)
	return nil
}

func (s *memoryStore) RemovePlayer(playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.players)
	s.players = slices.DeleteFunc(s.players, func(p Player) bool { return p.ID == playerID })
	return len(s.players) != before, nil
}

func (s *memoryStore) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.playerIndex(playerID)
	if i < 0 {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	p := s.players[i].clone()
	return &p, nil
}

func (s *memoryStore) FindPlayerByNumber(playerNumber string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		if p.PlayerNumber == playerNumber {
			c := p.clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("player number %q: %w", playerNumber, ErrNotFound)
}

func (s *memoryStore) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.clone())
	}
	return players, nil
}

func (s *memoryStore) GetPlayers(playerIDs []string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]Player, 0, len(playerIDs))
	for _, p := range s.players {
		if slices.Contains(playerIDs, p.ID) {
			players = append(players, p.clone())
		}
	}
	return players, nil
}

func (s *memoryStore) AddSession(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionIndex(session.ID) >= 0 {
		return fmt.Errorf("session %s already exists: %w", session.ID, ErrInvalidInput)
	}
	s.sessions = append(s.sessions, session)
	slices.SortStableFunc(s.sessions, func(a, b Session) int {
		return b.Date.Compare(a.Date)
	})
	return nil
}

func (s *memoryStore) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.sessionIndex(sessionID)
	if i < 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	session := s.sessions[i]
	return &session, nil
}

func (s *memoryStore) GetAllSessions() ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions), nil
}

// RemoveSession holds the write lock across the session delete and the
// per-player prune, so no reader observes a dangling record.
func (s *memoryStore) RemoveSession(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessionIndex(sessionID)
	if i < 0 {
		return false, nil
	}
	s.sessions = slices.Delete(s.sessions, i, i+1)

	pruned := 0
	for pi := range s.players {
		history := s.players[pi].SessionHistory
		before := len(history)
		s.players[pi].SessionHistory = slices.DeleteFunc(history, func(r SessionRecord) bool {
			return r.SessionID == sessionID
		})
		pruned += before - len(s.players[pi].SessionHistory)
	}
	log.Debug("Removed session from memory store", "sessionID", sessionID, "records_pruned", pruned)
	return true, nil
}

func (s *memoryStore) UpsertSessionRecord(playerID string, record SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.playerIndex(playerID)
	if pi < 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	if s.sessionIndex(record.SessionID) < 0 {
		return fmt.Errorf("session %s: %w", record.SessionID, ErrNotFound)
	}

	history := s.players[pi].SessionHistory
	for ri := range history {
		if history[ri].SessionID == record.SessionID {
			history[ri] = record
			return nil
		}
	}
	s.players[pi].SessionHistory = append(history, record)
	return nil
}

func (s *memoryStore) GetSessionRecord(playerID, sessionID string) (*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pi := s.playerIndex(playerID)
	if pi < 0 {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	for _, r := range s.players[pi].SessionHistory {
		if r.SessionID == sessionID {
			record := r
			return &record, nil
		}
	}
	return nil, fmt.Errorf("record for session %s: %w", sessionID, ErrNotFound)
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = nil
	s.sessions = nil
}

func (s *memoryStore) playerIndex(playerID string) int {
	return slices.IndexFunc(s.players, func(p Player) bool { return p.ID == playerID })
}

func (s *memoryStore) sessionIndex(sessionID string) int {
	return slices.IndexFunc(s.sessions, func(sess Session) bool { return sess.ID == sessionID })
}
