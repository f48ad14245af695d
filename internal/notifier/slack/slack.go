package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api        slackClient
	channelID  string
	windowSize int
	metrics    metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every post is logged
// as a dry run instead of sent.
func NewNotifier(token, channelID string, windowSize int, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	} else {
		log.Warn("SLACK_BOT_TOKEN not set, Slack posts will only be logged")
	}
	return NewNotifierWithAPI(api, channelID, windowSize, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, windowSize int, metrics metrics.Metrics) *Notifier {
	if windowSize <= 0 {
		windowSize = stats.DefaultWindowSize
	}
	return &Notifier{
		api:        api,
		channelID:  channelID,
		windowSize: windowSize,
		metrics:    metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendLeaderboard(entries []stats.Ranked, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRanking("🏆 Club Leaderboard 🏆", entries), dryRun)
	return err
}

func (s *Notifier) SendShortlist(session *club.Session, entries []stats.Ranked, dryRun bool) error {
	title := "📋 Shortlist 📋"
	if session != nil {
		title = fmt.Sprintf("📋 Shortlist: %s 📋", session.Name)
	}
	_, _, err := s.sendMessage(s.formatRanking(title, entries), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(entries []stats.Ranked) (any, error) {
	return s.formatRanking("🏆 Club Leaderboard 🏆", entries), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(player *club.Player, ws stats.WindowStats) (any, error) {
	return s.formatPlayerStats(player, ws), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string, suggestions []club.Player) (any, error) {
	return s.formatPlayerNotFound(query, suggestions), nil
}

// formatRanking renders ranked entries as a Block Kit message, one section per player.
func (s *Notifier) formatRanking(title string, entries []stats.Ranked) slack.Message {
	blocks := make([]slack.Block, 0, len(entries)+2)

	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Add some members to get started!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	windowText := fmt.Sprintf("Win %% over each player's last %d sessions", s.windowSize)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", windowText, true, false)))

	for _, entry := range entries {
		var medal string
		switch entry.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}

		playerText := fmt.Sprintf("%d. %s%s\n> Win %%: %s (%d/%d)",
			entry.Rank,
			medal,
			entry.Player.Name,
			entry.Stats.WinPct,
			entry.Stats.Wins,
			entry.Stats.Games,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerStats(player *club.Player, ws stats.WindowStats) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 Stats for %s", player.Name), true, false)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Win %%:*\n%s", ws.WinPct), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Wins / Games:*\n%d / %d", ws.Wins, ws.Games), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Sessions played:*\n%d", len(player.SessionHistory)), false, false),
	}

	footer := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Based on the last %d sessions", s.windowSize), true, false)

	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewContextBlock("", footer),
	)
}

func (s *Notifier) formatPlayerNotFound(query string, suggestions []club.Player) slack.Message {
	text := fmt.Sprintf("🤷 Could not find a player matching %q.", query)
	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	}
	if len(suggestions) > 0 {
		names := make([]string, 0, len(suggestions))
		for _, p := range suggestions {
			names = append(names, "*"+p.Name+"*")
		}
		hint := "Did you mean " + strings.Join(names, ", ") + "?"
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", hint, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}
