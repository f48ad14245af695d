package config

// Config holds all configuration for the application.
type Config struct {
	Port            string
	StoreBackend    string
	DBName          string
	Turso           TursoConfig
	Slack           SlackConfig
	ProjectID       string
	WindowSize      int
	SeedDemoData    bool
	LeaderboardCron string
	HTTP            HTTPConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	// LoginRateLimit is the number of login attempts allowed per client IP per minute.
	LoginRateLimit int
}

const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
)
