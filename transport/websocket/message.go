package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/dto"
)

const (
	actionGameNew    = "game:new"
	actionGameTurn   = "game:turn"
	actionGameReplay = "game:replay"
	actionGameState  = "game:state"
	actionGameLeave  = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	First  string `json:"first,omitempty"`
	Second string `json:"second,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *dto.GameView `json:"game,omitempty"`
	Event *dto.Event    `json:"event,omitempty"`
	Error string        `json:"error,omitempty"`
}
