package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
)

type gameRepo interface {
	Save(ctx context.Context, sessionID string, game *entity.Game) error
	GetByID(ctx context.Context, sessionID string) (*entity.Game, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

// GameManager owns the single active game of every session.
// All calls are serialized, so moves reach the game strictly in the order they arrive.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

// NewGame starts a game for the session, superseding any game it already had.
func (that *GameManager) NewGame(ctx context.Context, sessionID, first, second string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, apperror.ErrEmptySession
	}

	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" {
		return nil, apperror.ErrInvalidPlayerName
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	game := entity.NewGame(first, second)
	if err := that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "session", sessionID, "x", first, "o", second)

	return game, nil
}

// PlayTurn plays cell for the current player of the session's game.
// Invalid and ignored moves are normal outcomes, not errors; the game is saved only when it changed.
func (that *GameManager) PlayTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, entity.Outcome, error) {
	log := that.logger.With("method", "PlayTurn", "session", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(ctx, sessionID)
	if err != nil {
		return nil, entity.Outcome{}, err
	}

	player := game.CurrentPlayer()
	outcome := game.PlayTurn(cell)

	switch outcome.Kind {
	case entity.OutcomeInvalidMove:
		log.Debug("invalid move", "cell", cell, "error", outcome.Err)
		return game, outcome, nil
	case entity.OutcomeIgnored:
		log.Debug("move after game over ignored", "cell", cell)
		return game, outcome, nil
	case entity.OutcomeWin:
		log.Info("game won", "winner", outcome.Winner.Name(), "marker", outcome.Winner.Marker())
	case entity.OutcomeTie:
		log.Info("game tied")
	default:
		log.Debug("turn played", "player", player.Name(), "cell", cell)
	}

	if err = that.updateGame(ctx, sessionID, game); err != nil {
		return nil, entity.Outcome{}, err
	}

	return game, outcome, nil
}

// ResetGame clears the board of the session's game and gives the first move back to the first player.
func (that *GameManager) ResetGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset", "session", sessionID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getGame(ctx, sessionID)
}

// EndGame discards the session's game.
func (that *GameManager) EndGame(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.ErrEmptySession
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return apperror.ErrNoActiveGame
		}

		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game ended", "session", sessionID)

	return nil
}

func (that *GameManager) getGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, apperror.ErrEmptySession
	}

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, apperror.ErrNoActiveGame
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, sessionID string, game *entity.Game) error {
	if err := that.gameRepo.Save(ctx, sessionID, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
