package notifier

import (
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For scheduled and on-demand posts to the club channel
	SendLeaderboard(entries []stats.Ranked, dryRun bool) error
	SendShortlist(session *club.Session, entries []stats.Ranked, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(entries []stats.Ranked) (any, error)
	FormatPlayerStatsResponse(player *club.Player, ws stats.WindowStats) (any, error)
	FormatPlayerNotFoundResponse(query string, suggestions []club.Player) (any, error)
}
