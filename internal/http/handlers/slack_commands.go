package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/roster"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithFormatted casts a notifier response to a Slack message and writes it.
func respondWithFormatted(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

func LeaderboardCommandHandler(svc *roster.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Leaderboard()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}
		msg, err := notifier.FormatLeaderboardResponse(entries)
		respondWithFormatted(w, msg, err)
	}
}

func PlayerStatsCommandHandler(svc *roster.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "query", query, "user", r.FormValue("user_name"))
		player, ws, err := svc.SearchPlayer(query)
		var msg any
		switch {
		case errors.Is(err, club.ErrNotFound):
			suggestions, suggestErr := svc.SuggestPlayers(query)
			if suggestErr != nil {
				log.Warn("Failed to suggest players", "query", query, "error", suggestErr)
			}
			msg, err = notifier.FormatPlayerNotFoundResponse(query, suggestions)
		case err != nil:
			http.Error(w, "Failed to look up player", http.StatusInternalServerError)
			log.Error("Failed to search player", "query", query, "error", err)
			return
		default:
			msg, err = notifier.FormatPlayerStatsResponse(player, ws)
		}
		respondWithFormatted(w, msg, err)
	}
}
