package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/database"
	"github.com/mauv0809/club-ranker/internal/roster"
)

type seederConfig struct {
	dbName        string
	primaryURL    string
	authToken     string
	extraSessions int
}

// Simplified config loading for the script
func loadConfig() seederConfig {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	cfg := seederConfig{
		dbName:     os.Getenv("DB_NAME"),
		primaryURL: os.Getenv("TURSO_PRIMARY_URL"),
		authToken:  os.Getenv("TURSO_AUTH_TOKEN"),
	}
	if cfg.dbName == "" {
		cfg.dbName = "club.db"
	}
	if raw := os.Getenv("EXTRA_SESSIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			log.Fatalf("Error: EXTRA_SESSIONS must be a non-negative integer, got %q.", raw)
		}
		cfg.extraSessions = n
	}
	return cfg
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg.dbName, cfg.primaryURL, cfg.authToken)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	store := club.New(db)
	players, err := store.GetAllPlayers()
	if err != nil {
		log.Fatalf("Failed to read roster: %s", err)
	}
	if len(players) == 0 {
		if err := roster.SeedDemo(store); err != nil {
			log.Fatalf("Failed to seed demo roster: %s", err)
		}
		players = roster.DemoPlayers()
	} else {
		log.Info("Roster already populated, skipping demo roster", "players", len(players))
	}

	if cfg.extraSessions == 0 {
		return
	}

	log.Info("Preparing to insert random sessions...", "sessions", cfg.extraSessions, "players", len(players))
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	for i := 0; i < cfg.extraSessions; i++ {
		sessionID := uuid.NewString()
		date := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour).UTC()
		name := fmt.Sprintf("Seeded Session %s", date.Format("Jan 2 2006"))

		if _, err := tx.Exec("INSERT INTO sessions (id, name, date) VALUES (?, ?, ?)", sessionID, name, date.UnixNano()); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert session: %s", err)
		}

		valueStrings := make([]string, 0, len(players))
		valueArgs := make([]any, 0, len(players)*5)
		for _, p := range players {
			// Roughly two thirds of the club turns up to any given session.
			if rand.Intn(3) == 0 {
				continue
			}
			games := 1 + rand.Intn(15)
			wins := rand.Intn(games + 1)
			valueStrings = append(valueStrings, "(?, ?, ?, ?, ?)")
			valueArgs = append(valueArgs, p.ID, sessionID, wins, games, date.UnixNano())
		}
		if len(valueStrings) == 0 {
			continue
		}

		stmt := fmt.Sprintf("INSERT INTO session_records (player_id, session_id, wins, games, date) VALUES %s;", strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute batch insert: %s", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	log.Info("Successfully inserted random sessions.", "duration", time.Since(startTime))
}
