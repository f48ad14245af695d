package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/stats"
)

// Leaderboard ranks every player over the configured window.
func (s *Service) Leaderboard() ([]stats.Ranked, error) {
	players, err := s.store.GetAllPlayers()
	if err != nil {
		log.Error("Failed to load players for leaderboard", "error", err)
		return nil, err
	}
	return s.rank(players), nil
}

// Shortlist ranks an admin-chosen subset of players with the same ordering
// as the leaderboard. Unknown player ids are skipped and duplicates count
// once. A non-blank sessionID must name an existing session.
func (s *Service) Shortlist(sessionID string, playerIDs []string) (*Shortlist, error) {
	shortlist := &Shortlist{}
	if sessionID = strings.TrimSpace(sessionID); sessionID != "" {
		session, err := s.store.GetSession(sessionID)
		if err != nil {
			return nil, s.reject("Shortlist", err)
		}
		shortlist.Session = session
	}

	seen := make(map[string]struct{}, len(playerIDs))
	ids := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	players, err := s.store.GetPlayers(ids)
	if err != nil {
		log.Error("Failed to load players for shortlist", "error", err)
		return nil, err
	}
	shortlist.Entries = s.rank(players)
	log.Debug("Built shortlist", "sessionID", sessionID, "requested", len(playerIDs), "ranked", len(shortlist.Entries))
	return shortlist, nil
}

// PlayerStats returns a player with their window stats.
func (s *Service) PlayerStats(playerID string) (*club.Player, stats.WindowStats, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, stats.WindowStats{}, err
	}
	return player, stats.ComputeWindowStats(player.SessionHistory, s.windowSize), nil
}

// SearchPlayer finds a player by name, case-insensitively. An exact match
// wins over a partial one; otherwise the first player whose name contains
// the query is returned.
func (s *Service) SearchPlayer(query string) (*club.Player, stats.WindowStats, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, stats.WindowStats{}, s.reject("SearchPlayer", fmt.Errorf("search query: %w", club.ErrEmptyField))
	}

	players, err := s.store.GetAllPlayers()
	if err != nil {
		return nil, stats.WindowStats{}, err
	}

	var match *club.Player
	for i := range players {
		name := strings.ToLower(players[i].Name)
		if name == query {
			match = &players[i]
			break
		}
		if match == nil && strings.Contains(name, query) {
			match = &players[i]
		}
	}
	if match == nil {
		return nil, stats.WindowStats{}, s.reject("SearchPlayer", fmt.Errorf("no player matching %q: %w", query, club.ErrNotFound))
	}
	return match, stats.ComputeWindowStats(match.SessionHistory, s.windowSize), nil
}

// SuggestPlayers returns up to maxSuggestions players whose names resemble
// query, for a search that found nothing.
func (s *Service) SuggestPlayers(query string) ([]club.Player, error) {
	players, err := s.store.GetAllPlayers()
	if err != nil {
		return nil, err
	}
	suggestions := club.SuggestPlayers(query, players, maxSuggestions)
	out := make([]club.Player, 0, len(suggestions))
	for _, suggestion := range suggestions {
		out = append(out, suggestion.Player)
	}
	return out, nil
}

func (s *Service) rank(players []club.Player) []stats.Ranked {
	start := time.Now()
	ranked := stats.RankPlayers(players, s.windowSize)
	s.metrics.ObserveRankingDuration(time.Since(start).Seconds())
	return ranked
}
