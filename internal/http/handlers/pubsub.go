package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/pubsub"
	"github.com/mauv0809/club-ranker/internal/roster"
)

// decodePush unwraps a Pub/Sub push request into event. It writes the error
// response itself and reports whether decoding succeeded.
func decodePush(w http.ResponseWriter, r *http.Request, event any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var push pubsub.PushRequest
	if err := json.Unmarshal(bodyBytes, &push); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	if err := pubsub.Decode(push.Message.Data, event); err != nil {
		log.Error("Failed to decode event payload", "messageID", push.Message.ID, "error", err)
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return false
	}
	return true
}

// ResultRecordedHandler reposts the leaderboard after a result changes the ranking.
func ResultRecordedHandler(poster LeaderboardPoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.ResultRecorded
		if !decodePush(w, r, &event) {
			return
		}
		log.Info("Result recorded", "playerID", event.PlayerID, "sessionID", event.SessionID, "wins", event.Wins, "games", event.Games)
		if err := poster.PostLeaderboardNow(IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to post leaderboard after result", "error", err)
			http.Error(w, "Failed to post leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// SessionRemovedHandler reposts the leaderboard when a session and its
// records are gone.
func SessionRemovedHandler(svc *roster.Service, poster LeaderboardPoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.SessionRemoved
		if !decodePush(w, r, &event) {
			return
		}
		if _, err := svc.Session(event.SessionID); err == nil {
			log.Warn("Session still exists, skipping repost", "sessionID", event.SessionID)
			w.Write([]byte("OK"))
			return
		}
		log.Info("Session removed", "sessionID", event.SessionID)
		if err := poster.PostLeaderboardNow(IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to post leaderboard after session removal", "error", err)
			http.Error(w, "Failed to post leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
