package events

import (
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"encoding/json"
	"fmt"
)

// Event types emitted by a room.
const (
	TypeGameStarted = "game_started"
	TypeMoveMade    = "move_made"
	TypeGameOver    = "game_over"
)

// Event is the envelope delivered to room listeners.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GameStartedPayload is the payload for the "game_started" event.
type GameStartedPayload struct {
	RoomID  string `json:"room_id"`
	PlayerX string `json:"player_x"`
	PlayerO string `json:"player_o"`
	Board   string `json:"board"`
}

// MoveMadePayload is the payload for the "move_made" event.
type MoveMadePayload struct {
	RoomID string          `json:"room_id"`
	Mark   game.PlayerMark `json:"mark"`
	Move   game.Move       `json:"move"`
	Board  string          `json:"board"`
	Status game.Status     `json:"status"`
}

// GameOverPayload is the payload for the "game_over" event.
type GameOverPayload struct {
	RoomID string          `json:"room_id"`
	Result game.GameResult `json:"result"`
	Winner game.PlayerMark `json:"winner,omitempty"`
	Board  string          `json:"board"`
}

// New wraps a payload into an Event.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", e.Type, err)
	}
	return nil
}
