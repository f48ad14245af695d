package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a ClubStore backed by the given database. The schema is
// expected to be migrated already (see database.InitDB).
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// AddPlayer inserts a new player. The player number check and the insert
// share a transaction so the uniqueness invariant holds.
func (s *store) AddPlayer(player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE player_number = ?)", player.PlayerNumber).Scan(&exists)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check player number: %w", err)
	}
	if exists {
		tx.Rollback()
		return fmt.Errorf("player number %q: %w", player.PlayerNumber, ErrDuplicatePlayerNumber)
	}

	_, err = tx.Exec("INSERT INTO players (id, name, player_number, is_club_admin) VALUES (?, ?, ?, ?)",
		player.ID, player.Name, player.PlayerNumber, player.IsClubAdmin)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert player: %w", err)
	}

	for _, r := range player.SessionHistory {
		if err := upsertRecord(tx, player.ID, r); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) RemovePlayer(playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec("DELETE FROM session_records WHERE player_id = ?", playerID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete player records: %w", err)
	}
	res, err := tx.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}
	return n > 0, tx.Commit()
}

func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOnePlayer("WHERE id = ?", playerID)
}

func (s *store) FindPlayerByNumber(playerNumber string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOnePlayer("WHERE player_number = ?", playerNumber)
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers("", nil)
}

func (s *store) GetPlayers(playerIDs []string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []Player{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	return s.queryPlayers("WHERE id IN ("+placeholders+")", ToAnySlice(playerIDs))
}

func (s *store) AddSession(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)", session.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check session id: %w", err)
	}
	if exists {
		return fmt.Errorf("session %s already exists: %w", session.ID, ErrInvalidInput)
	}

	_, err := s.db.Exec("INSERT INTO sessions (id, name, date) VALUES (?, ?, ?)",
		session.ID, session.Name, session.Date.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *store) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var session Session
	var date int64
	err := s.db.QueryRow("SELECT id, name, date FROM sessions WHERE id = ?", sessionID).Scan(&session.ID, &session.Name, &date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	session.Date = fromUnixNano(date)
	return &session, nil
}

func (s *store) GetAllSessions() ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, date FROM sessions ORDER BY date DESC, rowid ASC")
	if err != nil {
		log.Error("Failed to query all sessions", "error", err)
		return nil, err
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var session Session
		var date int64
		if err := rows.Scan(&session.ID, &session.Name, &date); err != nil {
			return nil, err
		}
		session.Date = fromUnixNano(date)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// RemoveSession prunes the session's records and deletes the session in one
// transaction.
func (s *store) RemoveSession(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}

	pruned, err := tx.Exec("DELETE FROM session_records WHERE session_id = ?", sessionID)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to prune session records: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}
	if n == 0 {
		tx.Rollback()
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	prunedCount, _ := pruned.RowsAffected()
	log.Debug("Removed session", "sessionID", sessionID, "records_pruned", prunedCount)
	return true, nil
}

func (s *store) UpsertSessionRecord(playerID string, record SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var playerExists, sessionExists bool
	err = tx.QueryRow(`
		SELECT
			EXISTS(SELECT 1 FROM players WHERE id = ?),
			EXISTS(SELECT 1 FROM sessions WHERE id = ?)
	`, playerID, record.SessionID).Scan(&playerExists, &sessionExists)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("database error: %w", err)
	}
	if !playerExists {
		tx.Rollback()
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	if !sessionExists {
		tx.Rollback()
		return fmt.Errorf("session %s: %w", record.SessionID, ErrNotFound)
	}

	if err := upsertRecord(tx, playerID, record); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) GetSessionRecord(playerID, sessionID string) (*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var record SessionRecord
	var date int64
	err := s.db.QueryRow(`
		SELECT session_id, wins, games, date
		FROM session_records
		WHERE player_id = ? AND session_id = ?
	`, playerID, sessionID).Scan(&record.SessionID, &record.Wins, &record.Games, &date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record for session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	record.Date = fromUnixNano(date)
	return &record, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	for _, table := range []string{"session_records", "sessions", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func upsertRecord(tx *sql.Tx, playerID string, record SessionRecord) error {
	_, err := tx.Exec(`
		INSERT INTO session_records (player_id, session_id, wins, games, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id, session_id) DO UPDATE SET
			wins = excluded.wins,
			games = excluded.games,
			date = excluded.date;
	`, playerID, record.SessionID, record.Wins, record.Games, record.Date.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to upsert session record: %w", err)
	}
	return nil
}

func (s *store) queryOnePlayer(where string, args ...any) (*Player, error) {
	players, err := s.queryPlayers(where, args)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("player: %w", ErrNotFound)
	}
	return &players[0], nil
}

// queryPlayers loads the matching players in insertion order and attaches
// their session histories, also in insertion order.
func (s *store) queryPlayers(where string, args []any) ([]Player, error) {
	rows, err := s.db.Query("SELECT id, name, player_number, is_club_admin FROM players "+where+" ORDER BY rowid", args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}

	players := []Player{}
	index := make(map[string]int)
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.PlayerNumber, &p.IsClubAdmin); err != nil {
			rows.Close()
			return nil, err
		}
		p.SessionHistory = []SessionRecord{}
		index[p.ID] = len(players)
		players = append(players, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return players, nil
	}

	recordRows, err := s.db.Query("SELECT player_id, session_id, wins, games, date FROM session_records ORDER BY rowid")
	if err != nil {
		log.Error("Failed to query session records", "error", err)
		return nil, err
	}
	defer recordRows.Close()

	for recordRows.Next() {
		var playerID string
		var r SessionRecord
		var date int64
		if err := recordRows.Scan(&playerID, &r.SessionID, &r.Wins, &r.Games, &date); err != nil {
			return nil, err
		}
		i, ok := index[playerID]
		if !ok {
			continue
		}
		r.Date = fromUnixNano(date)
		players[i].SessionHistory = append(players[i].SessionHistory, r)
	}
	return players, recordRows.Err()
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
