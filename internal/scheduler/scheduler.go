// Package scheduler posts the club leaderboard on a cron schedule.
package scheduler

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/stats"
	"github.com/robfig/cron/v3"
)

// LeaderboardSource provides the current ranking.
type LeaderboardSource interface {
	Leaderboard() ([]stats.Ranked, error)
}

// Scheduler runs the periodic leaderboard post.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	board    LeaderboardSource
	notifier notifier.Notifier
}

// New creates a scheduler that posts the leaderboard according to spec, a
// standard five-field cron expression such as "0 9 * * MON".
func New(spec string, board LeaderboardSource, notifier notifier.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		spec:     spec,
		board:    board,
		notifier: notifier,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		log.Info("Running scheduled leaderboard post")
		if err := s.PostLeaderboardNow(false); err != nil {
			log.Error("Scheduled leaderboard post failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid leaderboard schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Info("Scheduler started", "schedule", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}

// PostLeaderboardNow ranks the club and posts the result immediately.
func (s *Scheduler) PostLeaderboardNow(dryRun bool) error {
	entries, err := s.board.Leaderboard()
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return s.notifier.SendLeaderboard(entries, dryRun)
}
