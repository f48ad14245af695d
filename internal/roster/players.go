package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
	"github.com/mauv0809/club-ranker/internal/pubsub"
)

// AddPlayer registers a new club member. Name and player number are trimmed
// and must not be blank; the number must not already be in use.
func (s *Service) AddPlayer(name, playerNumber string, isClubAdmin bool) (*club.Player, error) {
	name = strings.TrimSpace(name)
	playerNumber = strings.TrimSpace(playerNumber)
	if name == "" {
		return nil, s.reject("AddPlayer", fmt.Errorf("player name: %w", club.ErrEmptyField))
	}
	if playerNumber == "" {
		return nil, s.reject("AddPlayer", fmt.Errorf("player number: %w", club.ErrEmptyField))
	}

	player := club.Player{
		ID:             s.newID(),
		Name:           name,
		PlayerNumber:   playerNumber,
		IsClubAdmin:    isClubAdmin,
		SessionHistory: []club.SessionRecord{},
	}
	if err := s.store.AddPlayer(player); err != nil {
		return nil, s.reject("AddPlayer", err)
	}

	s.metrics.IncPlayersAdded()
	log.Info("Added player", "playerID", player.ID, "name", player.Name, "admin", player.IsClubAdmin)
	s.publish(pubsub.EventPlayerAdded, pubsub.PlayerAdded{
		PlayerID:     player.ID,
		Name:         player.Name,
		PlayerNumber: player.PlayerNumber,
		IsClubAdmin:  player.IsClubAdmin,
	})
	return &player, nil
}

// RemovePlayer deletes a player and their history. Unknown ids are a no-op.
// Guarding against removing the signed-in player is up to the caller.
func (s *Service) RemovePlayer(playerID string) error {
	if strings.TrimSpace(playerID) == "" {
		return nil
	}
	removed, err := s.store.RemovePlayer(playerID)
	if err != nil {
		return s.reject("RemovePlayer", err)
	}
	if !removed {
		log.Debug("RemovePlayer: unknown player, nothing to do", "playerID", playerID)
		return nil
	}

	s.metrics.IncPlayersRemoved()
	log.Info("Removed player", "playerID", playerID)
	s.publish(pubsub.EventPlayerRemoved, pubsub.PlayerRemoved{PlayerID: playerID})
	return nil
}

// FindPlayerByNumber resolves a login. Failed lookups are auth traffic, not
// rejected commands, so they are not counted.
func (s *Service) FindPlayerByNumber(playerNumber string) (*club.Player, error) {
	playerNumber = strings.TrimSpace(playerNumber)
	if playerNumber == "" {
		return nil, fmt.Errorf("player number: %w", club.ErrEmptyField)
	}
	return s.store.FindPlayerByNumber(playerNumber)
}

func (s *Service) Players() ([]club.Player, error) {
	return s.store.GetAllPlayers()
}

func (s *Service) Player(playerID string) (*club.Player, error) {
	return s.store.GetPlayer(playerID)
}
