package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventPlayerAdded    EventType = "player-added"
	EventPlayerRemoved  EventType = "player-removed"
	EventSessionCreated EventType = "session-created"
	EventSessionRemoved EventType = "session-removed"
	EventResultRecorded EventType = "result-recorded"
)

type PlayerAdded struct {
	PlayerID     string `msgpack:"player_id"`
	Name         string `msgpack:"name"`
	PlayerNumber string `msgpack:"player_number"`
	IsClubAdmin  bool   `msgpack:"is_club_admin"`
}

type PlayerRemoved struct {
	PlayerID string `msgpack:"player_id"`
}

type SessionCreated struct {
	SessionID string    `msgpack:"session_id"`
	Name      string    `msgpack:"name"`
	Date      time.Time `msgpack:"date"`
}

type SessionRemoved struct {
	SessionID string `msgpack:"session_id"`
}

type ResultRecorded struct {
	PlayerID  string    `msgpack:"player_id"`
	SessionID string    `msgpack:"session_id"`
	Wins      int       `msgpack:"wins"`
	Games     int       `msgpack:"games"`
	Date      time.Time `msgpack:"date"`
}

// PushRequest is the body Pub/Sub sends to a push subscription endpoint.
// Message.Data is base64 in the JSON and decoded by encoding/json.
type PushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data []byte `json:"data"`
	} `json:"message"`
}
