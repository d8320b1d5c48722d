// Package dto holds the JSON views the transports send to the presentation.
package dto

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

type PlayerView struct {
	Name   string `json:"name"`
	Marker string `json:"marker"`
}

type GameView struct {
	Board         [entity.BoardSize]string `json:"board"`
	Players       [2]PlayerView            `json:"players"`
	CurrentPlayer PlayerView               `json:"current_player"`
	GameOver      bool                     `json:"game_over"`
	Result        string                   `json:"result,omitempty"`
	Winner        *PlayerView              `json:"winner,omitempty"`
	WinningLine   []int                    `json:"winning_line,omitempty"`
}

// Event tells the presentation what to render after a move: displayMessage and showReplay.
type Event struct {
	Outcome    string `json:"outcome"`
	Message    string `json:"message,omitempty"`
	ShowReplay bool   `json:"show_replay"`
}

type NewGameRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

type TurnResponse struct {
	Game  GameView `json:"game"`
	Event Event    `json:"event"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewPlayerView(player entity.Player) PlayerView {
	return PlayerView{
		Name:   player.Name(),
		Marker: player.Marker(),
	}
}

func NewGameView(game *entity.Game) GameView {
	players := game.Players()

	view := GameView{
		Board:         game.Board().Cells(),
		Players:       [2]PlayerView{NewPlayerView(players[0]), NewPlayerView(players[1])},
		CurrentPlayer: NewPlayerView(game.CurrentPlayer()),
		GameOver:      game.IsGameOver(),
	}

	result := game.Result()
	if result.IsTerminal() {
		view.Result = result.Kind.String()
	}

	if result.Kind == entity.OutcomeWin {
		winner := NewPlayerView(result.Winner)
		view.Winner = &winner

		if _, line, ok := game.Board().WinningLine(); ok {
			view.WinningLine = line[:]
		}
	}

	return view
}

func NewEvent(outcome entity.Outcome) Event {
	return Event{
		Outcome:    outcome.Kind.String(),
		Message:    outcome.Message(),
		ShowReplay: outcome.ShowReplay(),
	}
}
