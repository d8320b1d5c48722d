package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	firstPlayer  = 0
	secondPlayer = 1
)

// Game is the turn state machine for one hot-seat session.
// While result is the zero Outcome the game awaits a move; a Win or Tie result is terminal until Reset.
type Game struct {
	board   *Board
	players [2]Player
	current int
	result  Outcome
}

// NewGame creates a game in which first plays "X" and moves first, second plays "O".
func NewGame(first, second string) *Game {
	return &Game{
		board: NewBoard(),
		players: [2]Player{
			NewPlayer(first, MarkerX),
			NewPlayer(second, MarkerO),
		},
		current: firstPlayer,
	}
}

// PlayTurn places the current player's marker on cell.
// After a successful write a win is checked before a tie; only a continuing game switches turns.
func (that *Game) PlayTurn(cell int) Outcome {
	if that.IsGameOver() {
		return ignored()
	}

	player := that.CurrentPlayer()
	if err := that.board.Set(cell, player.Marker()); err != nil {
		return invalidMove(err)
	}

	if _, _, ok := that.board.WinningLine(); ok {
		that.result = win(player)
		return that.result
	}

	if that.board.IsFull() {
		that.result = tie()
		return that.result
	}

	that.switchTurn()

	return continued()
}

func (that *Game) switchTurn() {
	if that.current == firstPlayer {
		that.current = secondPlayer
		return
	}
	that.current = firstPlayer
}

// Reset clears the board and hands the first move back to the first player. Players are kept.
func (that *Game) Reset() {
	that.board.Reset()
	that.current = firstPlayer
	that.result = Outcome{}
}

func (that *Game) CurrentPlayer() Player {
	return that.players[that.current]
}

func (that *Game) IsGameOver() bool {
	return that.result.IsTerminal()
}

func (that *Game) Players() [2]Player {
	return that.players
}

func (that *Game) Board() *Board {
	return that.board
}

// Result returns the terminal outcome, or the zero Outcome while the game is in play.
func (that *Game) Result() Outcome {
	return that.result
}

func (that *Game) playerByMarker(marker string) (Player, bool) {
	for _, player := range that.players {
		if player.Marker() == marker {
			return player, true
		}
	}

	return Player{}, false
}

// Snapshot is the serializable form of a Game.
type Snapshot struct {
	Players [2]string         `json:"players"`
	Board   [BoardSize]string `json:"board"`
	Turn    string            `json:"turn"`
	Result  string            `json:"result,omitempty"`
	Winner  string            `json:"winner,omitempty"`
}

func (that *Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		Players: [2]string{that.players[firstPlayer].Name(), that.players[secondPlayer].Name()},
		Board:   that.board.Cells(),
		Turn:    that.CurrentPlayer().Marker(),
	}

	if that.IsGameOver() {
		snapshot.Result = that.result.Kind.String()
	}

	if that.result.Kind == OutcomeWin {
		snapshot.Winner = that.result.Winner.Marker()
	}

	return snapshot
}

// Restore rebuilds a Game from a snapshot, rejecting any state PlayTurn could not have produced.
func Restore(snapshot Snapshot) (*Game, error) {
	game := NewGame(snapshot.Players[firstPlayer], snapshot.Players[secondPlayer])

	var countX, countO int
	for cell, marker := range snapshot.Board {
		switch marker {
		case EmptyCell:
			continue
		case MarkerX:
			countX++
		case MarkerO:
			countO++
		default:
			return nil, fmt.Errorf("%w: unknown marker %q in cell %d", apperror.ErrCorruptSnapshot, marker, cell)
		}

		game.board.cells[cell] = marker
	}

	if countX != countO && countX != countO+1 {
		return nil, fmt.Errorf("%w: %d X against %d O", apperror.ErrCorruptSnapshot, countX, countO)
	}

	switch snapshot.Turn {
	case MarkerX:
		game.current = firstPlayer
	case MarkerO:
		game.current = secondPlayer
	default:
		return nil, fmt.Errorf("%w: unknown turn %q", apperror.ErrCorruptSnapshot, snapshot.Turn)
	}

	if err := game.restoreResult(snapshot, countX, countO); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *Game) restoreResult(snapshot Snapshot, countX, countO int) error {
	marker, _, hasLine := that.board.WinningLine()

	switch snapshot.Result {
	case "":
		if hasLine || that.board.IsFull() {
			return fmt.Errorf("%w: finished board without a result", apperror.ErrCorruptSnapshot)
		}

		// X moves whenever both players have placed the same number of markers.
		expected := MarkerO
		if countX == countO {
			expected = MarkerX
		}

		if snapshot.Turn != expected {
			return fmt.Errorf("%w: turn %s, expected %s", apperror.ErrCorruptSnapshot, snapshot.Turn, expected)
		}
	case OutcomeWin.String():
		if !hasLine || marker != snapshot.Winner || marker != snapshot.Turn {
			return fmt.Errorf("%w: winner %q does not match the board", apperror.ErrCorruptSnapshot, snapshot.Winner)
		}

		if that.board.hasLine(opponentOf(marker)) {
			return fmt.Errorf("%w: both markers own a line", apperror.ErrCorruptSnapshot)
		}

		// The winner made the last move.
		if (marker == MarkerX && countX != countO+1) || (marker == MarkerO && countX != countO) {
			return fmt.Errorf("%w: %d X against %d O after a %s win", apperror.ErrCorruptSnapshot, countX, countO, marker)
		}

		winner, _ := that.playerByMarker(marker)
		that.result = win(winner)
	case OutcomeTie.String():
		if hasLine || !that.board.IsFull() {
			return fmt.Errorf("%w: tie on an undecided board", apperror.ErrCorruptSnapshot)
		}

		if countX != countO+1 {
			return fmt.Errorf("%w: tie with %d X against %d O", apperror.ErrCorruptSnapshot, countX, countO)
		}

		that.result = tie()
	default:
		return fmt.Errorf("%w: unknown result %q", apperror.ErrCorruptSnapshot, snapshot.Result)
	}

	return nil
}

func opponentOf(marker string) string {
	if marker == MarkerX {
		return MarkerO
	}

	return MarkerX
}
