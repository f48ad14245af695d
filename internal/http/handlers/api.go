package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/roster"
	"github.com/mauv0809/club-ranker/internal/stats"
)

// LeaderboardPoster posts the current leaderboard to the club channel.
type LeaderboardPoster interface {
	PostLeaderboardNow(dryRun bool) error
}

type LoginRequest struct {
	PlayerNumber string `json:"player_number"`
}

type AddPlayerRequest struct {
	Name         string `json:"name"`
	PlayerNumber string `json:"player_number"`
	IsClubAdmin  bool   `json:"is_club_admin"`
}

type CreateSessionRequest struct {
	Name string `json:"name"`
}

type RecordResultRequest struct {
	Wins  Tally `json:"wins"`
	Games Tally `json:"games"`
}

type ShortlistRequest struct {
	SessionID string   `json:"session_id"`
	PlayerIDs []string `json:"player_ids"`
}

type LeaderboardResponse struct {
	WindowSize int            `json:"window_size"`
	Entries    []stats.Ranked `json:"entries"`
}

type PlayerStatsResponse struct {
	Player *club.Player      `json:"player"`
	Stats  stats.WindowStats `json:"stats"`
}

// Tally is the raw text of a form count. Both JSON numbers and strings are
// accepted since the web form submits text inputs; the roster service parses
// it once the player and session have resolved.
type Tally string

func (t *Tally) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Tally(s)
		return nil
	}
	*t = Tally(b)
	return nil
}

func LoginHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeBody(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}
		player, err := svc.FindPlayerByNumber(req.PlayerNumber)
		if err != nil {
			log.Info("Login rejected", "code", club.ErrorCode(err))
			writeDomainError(w, err)
			return
		}
		log.Info("Player logged in", "playerID", player.ID, "admin", player.IsClubAdmin)
		WriteJSON(w, http.StatusOK, player)
	}
}

func ListPlayersHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := svc.Players()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, players)
	}
}

func AddPlayerHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddPlayerRequest
		if err := decodeBody(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}
		player, err := svc.AddPlayer(req.Name, req.PlayerNumber, req.IsClubAdmin)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, player)
	}
}

// RemovePlayerHandler removes a player. An admin cannot remove themselves,
// which keeps at least one admin able to manage the club.
func RemovePlayerHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		if current := PlayerFromContext(r); current != nil && current.ID == playerID {
			WriteError(w, http.StatusConflict, CodeCannotRemoveMe, "you cannot remove yourself")
			return
		}
		if err := svc.RemovePlayer(playerID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func PlayerStatsHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ws, err := svc.PlayerStats(chi.URLParam(r, "playerID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, PlayerStatsResponse{Player: player, Stats: ws})
	}
}

func ListSessionsHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := svc.Sessions()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, sessions)
	}
}

func CreateSessionHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := decodeBody(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}
		session, err := svc.CreateSession(req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, session)
	}
}

func RemoveSessionHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveSession(chi.URLParam(r, "sessionID")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func SessionResultHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.SessionRecord(chi.URLParam(r, "playerID"), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, record)
	}
}

// RecordResultHandler stores a player's tallies for a session. Players may
// record their own results; admins may record anyone's.
func RecordResultHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		sessionID := chi.URLParam(r, "sessionID")

		current := PlayerFromContext(r)
		if current == nil || (current.ID != playerID && !current.IsClubAdmin) {
			WriteError(w, http.StatusForbidden, CodeForbidden, "you can only record your own results")
			return
		}

		var req RecordResultRequest
		if err := decodeBody(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}

		if err := svc.RecordSessionTally(playerID, sessionID, string(req.Wins), string(req.Games)); err != nil {
			writeDomainError(w, err)
			return
		}
		record, err := svc.SessionRecord(playerID, sessionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, record)
	}
}

func LeaderboardHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Leaderboard()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, LeaderboardResponse{WindowSize: svc.WindowSize(), Entries: entries})
	}
}

// ShortlistHandler ranks a chosen subset of players. With post=true the
// shortlist is also posted to Slack.
func ShortlistHandler(svc *roster.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShortlistRequest
		if err := decodeBody(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}
		shortlist, err := svc.Shortlist(req.SessionID, req.PlayerIDs)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if r.URL.Query().Get("post") == "true" {
			if err := notifier.SendShortlist(shortlist.Session, shortlist.Entries, IsDryRunFromContext(r)); err != nil {
				log.Error("Failed to post shortlist", "error", err)
				WriteError(w, http.StatusBadGateway, CodeNotifyFailed, "failed to post shortlist to Slack")
				return
			}
		}
		WriteJSON(w, http.StatusOK, shortlist)
	}
}

func PostLeaderboardHandler(poster LeaderboardPoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := IsDryRunFromContext(r)
		if err := poster.PostLeaderboardNow(isDryRun); err != nil {
			log.Error("Failed to post leaderboard", "error", err)
			WriteError(w, http.StatusBadGateway, CodeNotifyFailed, "failed to post leaderboard to Slack")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"status": "posted", "dry_run": isDryRun})
	}
}
