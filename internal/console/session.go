package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	sessionID = "console"

	cmdQuit   = "q"
	cmdReplay = "r"
)

type gameManager interface {
	NewGame(ctx context.Context, sessionID, first, second string) (*entity.Game, error)
	PlayTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, entity.Outcome, error)
	ResetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	EndGame(ctx context.Context, sessionID string) error
}

// Session runs one hot-seat game at a terminal: two players share the input and take turns.
type Session struct {
	games    gameManager
	renderer *Renderer
	in       *bufio.Scanner
}

func NewSession(games gameManager, in io.Reader, out io.Writer) *Session {
	return &Session{
		games:    games,
		renderer: NewRenderer(out),
		in:       bufio.NewScanner(in),
	}
}

// Run plays until the players quit or the input ends.
func (that *Session) Run(ctx context.Context) error {
	first, ok := that.readName(entity.MarkerX)
	if !ok {
		return that.in.Err()
	}

	second, ok := that.readName(entity.MarkerO)
	if !ok {
		return that.in.Err()
	}

	game, err := that.games.NewGame(ctx, sessionID, first, second)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	defer func() {
		if err := that.games.EndGame(context.WithoutCancel(ctx), sessionID); err != nil && !errors.Is(err, apperror.ErrNoActiveGame) {
			that.renderer.Hint(err.Error())
		}
	}()

	that.renderer.Message(msgNewGame)
	that.renderer.Board(game.Board())

	for {
		if err = ctx.Err(); err != nil {
			return nil
		}

		if game.IsGameOver() {
			that.renderer.Prompt("Type %s to play again or %s to quit: ", cmdReplay, cmdQuit)
		} else {
			that.renderer.Prompt("%s, pick a cell [0-8] or %s to quit: ", that.renderer.PlayerLabel(game.CurrentPlayer()), cmdQuit)
		}

		line, ok := that.readLine()
		if !ok || strings.EqualFold(line, cmdQuit) {
			that.renderer.Message("Bye!")
			return that.in.Err()
		}

		if game.IsGameOver() {
			if !strings.EqualFold(line, cmdReplay) {
				that.renderer.Hint("The game is over.")
				continue
			}

			if game, err = that.games.ResetGame(ctx, sessionID); err != nil {
				return fmt.Errorf("failed to reset game: %w", err)
			}

			that.renderer.Message(msgNewGame)
			that.renderer.Board(game.Board())

			continue
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			that.renderer.Hint("Enter a cell number from 0 to 8.")
			continue
		}

		var outcome entity.Outcome

		game, outcome, err = that.games.PlayTurn(ctx, sessionID, cell)
		if err != nil {
			return fmt.Errorf("failed to play turn: %w", err)
		}

		if outcome.Kind != entity.OutcomeInvalidMove {
			that.renderer.Board(game.Board())
		}

		that.renderer.Outcome(outcome)
	}
}

func (that *Session) readName(marker string) (string, bool) {
	for {
		that.renderer.Prompt("Player %s name: ", marker)

		name, ok := that.readLine()
		if !ok {
			return "", false
		}

		if name != "" {
			return name, true
		}

		that.renderer.Hint("Name can't be empty.")
	}
}

func (that *Session) readLine() (string, bool) {
	if !that.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(that.in.Text()), true
}
