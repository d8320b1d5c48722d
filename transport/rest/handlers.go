package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/dto"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/session"
)

const cookiePath = "/"

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleNewGame")

	var req dto.NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := session.Ensure(w, r, cookiePath)

	game, err := that.games.NewGame(r.Context(), sessionID, req.First, req.Second)
	if err != nil {
		log.Error("failed to start game", "error", err)
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, dto.NewGameView(game))
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.FromRequest(r)
	if !ok {
		that.writeAppError(w, apperror.ErrNoActiveGame)
		return
	}

	game, err := that.games.GetGame(r.Context(), sessionID)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, dto.NewGameView(game))
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleTurn")

	var req dto.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	sessionID, ok := session.FromRequest(r)
	if !ok {
		that.writeAppError(w, apperror.ErrNoActiveGame)
		return
	}

	game, outcome, err := that.games.PlayTurn(r.Context(), sessionID, *req.Cell)
	if err != nil {
		log.Error("failed to play turn", "error", err)
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, dto.TurnResponse{
		Game:  dto.NewGameView(game),
		Event: dto.NewEvent(outcome),
	})
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.FromRequest(r)
	if !ok {
		that.writeAppError(w, apperror.ErrNoActiveGame)
		return
	}

	game, err := that.games.ResetGame(r.Context(), sessionID)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, dto.NewGameView(game))
}

func (that *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.FromRequest(r)
	if !ok {
		that.writeAppError(w, apperror.ErrNoActiveGame)
		return
	}

	if err := that.games.EndGame(r.Context(), sessionID); err != nil {
		that.writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrNoActiveGame):
		that.writeError(w, http.StatusNotFound, apperror.ErrNoActiveGame.Error())
	case errors.Is(err, apperror.ErrInvalidPlayerName), errors.Is(err, apperror.ErrEmptySession):
		that.writeError(w, http.StatusBadRequest, err.Error())
	default:
		that.writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, dto.ErrorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
