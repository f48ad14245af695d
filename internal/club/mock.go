package club

import (
	"sync"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc           func(player Player) error
	RemovePlayerFunc        func(playerID string) (bool, error)
	GetPlayerFunc           func(playerID string) (*Player, error)
	FindPlayerByNumberFunc  func(playerNumber string) (*Player, error)
	GetAllPlayersFunc       func() ([]Player, error)
	GetPlayersFunc          func(playerIDs []string) ([]Player, error)
	AddSessionFunc          func(session Session) error
	GetSessionFunc          func(sessionID string) (*Session, error)
	GetAllSessionsFunc      func() ([]Session, error)
	RemoveSessionFunc       func(sessionID string) (bool, error)
	UpsertSessionRecordFunc func(playerID string, record SessionRecord) error
	GetSessionRecordFunc    func(playerID, sessionID string) (*SessionRecord, error)
	ClearFunc               func()

	// Call records
	AddPlayerCalls           []Player
	RemovePlayerCalls        []string
	AddSessionCalls          []Session
	RemoveSessionCalls       []string
	GetPlayersCalls          [][]string
	UpsertSessionRecordCalls []struct {
		PlayerID string
		Record   SessionRecord
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.RemovePlayerCalls = nil
	m.AddSessionCalls = nil
	m.RemoveSessionCalls = nil
	m.GetPlayersCalls = nil
	m.UpsertSessionRecordCalls = nil
}

func (m *MockStore) AddPlayer(player Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, player)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(player)
	}
	return nil
}

func (m *MockStore) RemovePlayer(playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, playerID)
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(playerID)
	}
	return false, nil
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) FindPlayerByNumber(playerNumber string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindPlayerByNumberFunc != nil {
		return m.FindPlayerByNumberFunc(playerNumber)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) AddSession(session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddSessionCalls = append(m.AddSessionCalls, session)
	if m.AddSessionFunc != nil {
		return m.AddSessionFunc(session)
	}
	return nil
}

func (m *MockStore) GetSession(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(sessionID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllSessions() ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllSessionsFunc != nil {
		return m.GetAllSessionsFunc()
	}
	return nil, nil
}

func (m *MockStore) RemoveSession(sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveSessionCalls = append(m.RemoveSessionCalls, sessionID)
	if m.RemoveSessionFunc != nil {
		return m.RemoveSessionFunc(sessionID)
	}
	return false, nil
}

func (m *MockStore) UpsertSessionRecord(playerID string, record SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertSessionRecordCalls = append(m.UpsertSessionRecordCalls, struct {
		PlayerID string
		Record   SessionRecord
	}{playerID, record})
	if m.UpsertSessionRecordFunc != nil {
		return m.UpsertSessionRecordFunc(playerID, record)
	}
	return nil
}

func (m *MockStore) GetSessionRecord(playerID, sessionID string) (*SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSessionRecordFunc != nil {
		return m.GetSessionRecordFunc(playerID, sessionID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
