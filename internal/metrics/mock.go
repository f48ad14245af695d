package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	playersAdded     int
	playersRemoved   int
	sessionsCreated  int
	sessionsRemoved  int
	resultsRecorded  int
	commandsRejected map[string]int
	rankingDurations []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandsRejected: make(map[string]int),
		rankingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayersAdded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersAdded++
}

func (m *Mock) IncPlayersRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRemoved++
}

func (m *Mock) IncSessionsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsCreated++
}

func (m *Mock) IncSessionsRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsRemoved++
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncCommandsRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsRejected[reason]++
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) PlayersAdded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersAdded
}

func (m *Mock) PlayersRemoved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRemoved
}

func (m *Mock) SessionsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionsCreated
}

func (m *Mock) SessionsRemoved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionsRemoved
}

func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// CommandsRejected returns how often IncCommandsRejected was called with reason.
func (m *Mock) CommandsRejected(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsRejected[reason]
}

// RankingObservations returns the number of ranking durations observed.
func (m *Mock) RankingObservations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rankingDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
