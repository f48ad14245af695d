package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	backend := strings.ToLower(getEnvDefault("STORE_BACKEND", BackendMemory))
	if backend != BackendMemory && backend != BackendSQL {
		log.Fatalf("Error: STORE_BACKEND must be %q or %q, got %q.", BackendMemory, BackendSQL, backend)
	}

	cfg := Config{
		Port:         getEnv("PORT"),
		StoreBackend: backend,
		DBName:       getEnvDefault("DB_NAME", "club.db"),
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		ProjectID:       os.Getenv("GCP_PROJECT"),
		WindowSize:      getIntEnv("WINDOW_SIZE", 3),
		SeedDemoData:    getBoolEnv("SEED_DEMO_DATA", backend == BackendMemory),
		LeaderboardCron: os.Getenv("LEADERBOARD_CRON"),
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(getEnvDefault("CORS_ALLOW_ORIGINS", "*")),
			LoginRateLimit:     getIntEnv("LOGIN_RATE_LIMIT", 10),
		},
	}
	return cfg
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Fatalf("Error: %s must be a positive integer, got %q.", key, raw)
	}
	return n
}

func getBoolEnv(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Error: %s must be a boolean, got %q.", key, raw)
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
