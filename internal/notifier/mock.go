package notifier

import (
	"sync"

	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendLeaderboardFunc              func(entries []stats.Ranked, dryRun bool) error
	FormatLeaderboardResponseFunc    func(entries []stats.Ranked) (any, error)
	FormatPlayerStatsResponseFunc    func(player *club.Player, ws stats.WindowStats) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string, suggestions []club.Player) (any, error)

	// Call records
	SendLeaderboardCalls []SendLeaderboardCall
	SendShortlistCalls   []SendShortlistCall
	PlayerStatsCalls     []*club.Player
	PlayerNotFoundCalls  []PlayerNotFoundCall
}

type SendLeaderboardCall struct {
	Entries []stats.Ranked
	DryRun  bool
}

type PlayerNotFoundCall struct {
	Query       string
	Suggestions []club.Player
}

type SendShortlistCall struct {
	Session *club.Session
	Entries []stats.Ranked
	DryRun  bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = nil
	m.SendShortlistCalls = nil
	m.PlayerStatsCalls = nil
	m.PlayerNotFoundCalls = nil
}

// LeaderboardsSent returns a copy of the SendLeaderboard call records.
func (m *Mock) LeaderboardsSent() []SendLeaderboardCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendLeaderboardCall(nil), m.SendLeaderboardCalls...)
}

func (m *Mock) SendLeaderboard(entries []stats.Ranked, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, SendLeaderboardCall{entries, dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(entries, dryRun)
	}
	return nil
}

func (m *Mock) SendShortlist(session *club.Session, entries []stats.Ranked, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendShortlistCalls = append(m.SendShortlistCalls, SendShortlistCall{session, entries, dryRun})
	return nil
}

func (m *Mock) FormatLeaderboardResponse(entries []stats.Ranked) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(entries)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(player *club.Player, ws stats.WindowStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerStatsCalls = append(m.PlayerStatsCalls, player)
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(player, ws)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string, suggestions []club.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerNotFoundCalls = append(m.PlayerNotFoundCalls, PlayerNotFoundCall{query, suggestions})
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query, suggestions)
	}
	return "formatted_player_not_found", nil
}
