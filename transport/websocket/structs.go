package websocket

import (
	"encoding/json"

	"github.com/pdkokare1/operative-backend/internal/entity"
)

// Message is the envelope every client frame and server frame uses.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both request arguments and response state; unused fields
// stay empty on the wire.
type Payload struct {
	SessionID    string `json:"session_id,omitempty"`
	DeviceID     string `json:"device_id,omitempty"`
	Name         string `json:"name,omitempty"`
	RoomCode     string `json:"room_code,omitempty"`
	Team         string `json:"team,omitempty"`
	Role         string `json:"role,omitempty"`
	Category     string `json:"category,omitempty"`
	TimerSeconds int    `json:"timer_seconds,omitempty"`
	Word         string `json:"word,omitempty"`
	Number       int    `json:"number,omitempty"`
	CardID       string `json:"card_id,omitempty"`

	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}
