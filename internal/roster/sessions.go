package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/pubsub"
)

// CreateSession schedules a session named name at the current time.
func (s *Service) CreateSession(name string) (*club.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.reject("CreateSession", fmt.Errorf("session name: %w", club.ErrEmptyField))
	}

	session := club.Session{
		ID:   s.newID(),
		Name: name,
		Date: s.clock.Now().UTC(),
	}
	if err := s.store.AddSession(session); err != nil {
		return nil, s.reject("CreateSession", err)
	}

	s.metrics.IncSessionsCreated()
	log.Info("Created session", "sessionID", session.ID, "name", session.Name, "date", session.Date)
	s.publish(pubsub.EventSessionCreated, pubsub.SessionCreated{
		SessionID: session.ID,
		Name:      session.Name,
		Date:      session.Date,
	})
	return &session, nil
}

// RemoveSession deletes a session together with every player's record for
// it. Unknown ids are a no-op.
func (s *Service) RemoveSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	removed, err := s.store.RemoveSession(sessionID)
	if err != nil {
		return s.reject("RemoveSession", err)
	}
	if !removed {
		log.Debug("RemoveSession: unknown session, nothing to do", "sessionID", sessionID)
		return nil
	}

	s.metrics.IncSessionsRemoved()
	log.Info("Removed session", "sessionID", sessionID)
	s.publish(pubsub.EventSessionRemoved, pubsub.SessionRemoved{SessionID: sessionID})
	return nil
}

// RecordSessionResult writes a player's tally for a session, replacing any
// earlier entry. Checks run in order: both ids must resolve, tallies must be
// whole numbers between 0 and MaxTally, and wins may not exceed games. The
// record takes the session's current date.
func (s *Service) RecordSessionResult(playerID, sessionID string, wins, games int) error {
	return s.recordResult(playerID, sessionID, func() (int, int, error) {
		return wins, games, nil
	})
}

// RecordSessionTally is RecordSessionResult for tallies typed into a form.
// Blank or non-numeric values are invalid input, reported only once both ids
// have resolved.
func (s *Service) RecordSessionTally(playerID, sessionID, wins, games string) error {
	return s.recordResult(playerID, sessionID, func() (int, int, error) {
		w, err := parseTally("wins", wins)
		if err != nil {
			return 0, 0, err
		}
		g, err := parseTally("games", games)
		if err != nil {
			return 0, 0, err
		}
		return w, g, nil
	})
}

func parseTally(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required: %w", field, club.ErrInvalidInput)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a whole number: %w", field, raw, club.ErrInvalidInput)
	}
	return n, nil
}

func (s *Service) recordResult(playerID, sessionID string, tallies func() (int, int, error)) error {
	const op = "RecordSessionResult"

	if strings.TrimSpace(playerID) == "" || strings.TrimSpace(sessionID) == "" {
		return s.reject(op, fmt.Errorf("a player and a session must be selected: %w", club.ErrInvalidInput))
	}
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return s.reject(op, err)
	}
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return s.reject(op, err)
	}
	wins, games, err := tallies()
	if err != nil {
		return s.reject(op, err)
	}
	if wins < 0 || games < 0 {
		return s.reject(op, fmt.Errorf("wins and games must be non-negative numbers: %w", club.ErrInvalidInput))
	}
	if wins > MaxTally || games > MaxTally {
		return s.reject(op, fmt.Errorf("wins and games may not exceed %d per session: %w", MaxTally, club.ErrInvalidInput))
	}
	if wins > games {
		return s.reject(op, fmt.Errorf("%d wins in %d games: %w", wins, games, club.ErrWinsExceedGames))
	}

	record := club.SessionRecord{
		SessionID: session.ID,
		Wins:      wins,
		Games:     games,
		Date:      session.Date,
	}
	if err := s.store.UpsertSessionRecord(player.ID, record); err != nil {
		return s.reject(op, err)
	}

	s.metrics.IncResultsRecorded()
	log.Info("Recorded session result", "playerID", player.ID, "sessionID", session.ID, "wins", wins, "games", games)
	s.publish(pubsub.EventResultRecorded, pubsub.ResultRecorded{
		PlayerID:  player.ID,
		SessionID: session.ID,
		Wins:      wins,
		Games:     games,
		Date:      session.Date,
	})
	return nil
}

// SessionRecord returns the player's existing entry for a session, used to
// pre-fill an edit.
func (s *Service) SessionRecord(playerID, sessionID string) (*club.SessionRecord, error) {
	return s.store.GetSessionRecord(playerID, sessionID)
}

// Sessions lists every session, most recent first.
func (s *Service) Sessions() ([]club.Session, error) {
	return s.store.GetAllSessions()
}

func (s *Service) Session(sessionID string) (*club.Session, error) {
	return s.store.GetSession(sessionID)
}
