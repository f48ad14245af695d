package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/config"
	"github.com/mauv0809/club-ranker/internal/database"
	server "github.com/mauv0809/club-ranker/internal/http"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/notifier/slack"
	"github.com/mauv0809/club-ranker/internal/pubsub"
	"github.com/mauv0809/club-ranker/internal/roster"
	"github.com/mauv0809/club-ranker/internal/scheduler"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	clubStore, closeStore := openStore(cfg)
	defer closeStore()

	if cfg.SeedDemoData {
		seedIfEmpty(clubStore)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, err := pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		events = client
		defer events.Close()
	} else {
		log.Warn("GCP_PROJECT not set, domain events will not be published")
	}

	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.WindowSize, metricsSvc)
	svc := roster.New(clubStore, metricsSvc, events, clockwork.NewRealClock(), cfg.WindowSize)

	sched := scheduler.New(cfg.LeaderboardCron, svc, notifier)
	if cfg.LeaderboardCron != "" {
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %s", err)
		}
		defer sched.Stop()
	}

	s := server.NewServer(svc, metricsSvc, metricsHandler, cfg, notifier, sched)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "store", cfg.StoreBackend, "window", svc.WindowSize())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// openStore returns the configured roster backend and a function releasing it.
func openStore(cfg config.Config) (club.ClubStore, func()) {
	if cfg.StoreBackend != config.BackendSQL {
		log.Info("Using in-memory roster store")
		return club.NewMemoryStore(), func() {}
	}

	dbStart := time.Now()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(dbStart).Milliseconds())
	return club.New(db), func() {
		log.Info("Closing database connection")
		dbTeardown()
	}
}

// seedIfEmpty loads the demo roster so a fresh club has an admin to log in with.
func seedIfEmpty(store club.ClubStore) {
	players, err := store.GetAllPlayers()
	if err != nil {
		log.Fatalf("Failed to inspect roster: %s", err)
	}
	if len(players) > 0 {
		log.Info("Roster already populated, skipping demo seed", "players", len(players))
		return
	}
	if err := roster.SeedDemo(store); err != nil {
		log.Fatalf("Failed to seed demo roster: %s", err)
	}
}
