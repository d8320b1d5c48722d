package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/dto"
)

func (that *Server) handleNewGame(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	game, err := that.games.NewGame(ctx, sessionID, payloadReq.First, payloadReq.Second)
	if errors.Is(err, apperror.ErrInvalidPlayerName) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to start game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to start a new game")
	}

	view := dto.NewGameView(game)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: &view})
}

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	game, outcome, err := that.games.PlayTurn(ctx, sessionID, *payloadReq.Cell)
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to play turn", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to play turn")
	}

	view := dto.NewGameView(game)
	event := dto.NewEvent(outcome)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: &view, Event: &event})
}

func (that *Server) handleReplay(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	game, err := that.games.ResetGame(ctx, sessionID)
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		that.logger.Error("failed to reset game", "method", "handleReplay", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to reset game")
	}

	view := dto.NewGameView(game)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: &view})
}

func (that *Server) handleGameState(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	game, err := that.games.GetGame(ctx, sessionID)
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		that.logger.Error("failed to get game", "method", "handleGameState", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get game")
	}

	view := dto.NewGameView(game)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: &view})
}

func (that *Server) handleGameLeave(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	err := that.games.EndGame(ctx, sessionID)
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		that.logger.Error("failed to end game", "method", "handleGameLeave", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to end game")
	}

	that.logger.Info("player left", "session", sessionID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{})
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
