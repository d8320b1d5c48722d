package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Save(ctx context.Context, sessionID string, game *entity.Game) error {
	args := that.Called(ctx, sessionID, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, sessionID string) (*entity.Game, error) {
	args := that.Called(ctx, sessionID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, sessionID string) error {
	args := that.Called(ctx, sessionID)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager() *GameManager {
	return NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a game with trimmed names", func(t *testing.T) {
		// Given: a manager with an empty store
		manager := newManager()

		// When: a game is started
		game, err := manager.NewGame(ctx, "s1", "  Alice ", "Bob")

		// Then: Alice plays X and moves first
		require.NoError(t, err)
		assert.Equal(t, "Alice", game.CurrentPlayer().Name())
		assert.Equal(t, entity.MarkerX, game.CurrentPlayer().Marker())

		// Then: the game is stored for the session
		stored, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Rejects blank names", func(t *testing.T) {
		manager := newManager()

		_, err := manager.NewGame(ctx, "s1", "Alice", "   ")
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerName)

		_, err = manager.GetGame(ctx, "s1")
		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})

	t.Run("Rejects empty session", func(t *testing.T) {
		manager := newManager()

		_, err := manager.NewGame(ctx, "", "Alice", "Bob")
		require.ErrorIs(t, err, apperror.ErrEmptySession)
	})

	t.Run("New game supersedes the previous one", func(t *testing.T) {
		// Given: a session with a game in progress
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)
		_, _, err = manager.PlayTurn(ctx, "s1", 4)
		require.NoError(t, err)

		// When: a new game is started for the same session
		_, err = manager.NewGame(ctx, "s1", "Carol", "Dave")
		require.NoError(t, err)

		// Then: only the new game remains
		game, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Carol", game.CurrentPlayer().Name())
		assert.Equal(t, 0, game.Board().Filled())
	})

	t.Run("Returns error if gameRepo.Save fails", func(t *testing.T) {
		// Given: a repository that fails on Save
		repo := &mockGameRepo{}
		repo.On("Save", mock.Anything, "s1", mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		// When: a game is started
		game, err := manager.NewGame(ctx, "s1", "Alice", "Bob")

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful turn is stored", func(t *testing.T) {
		// Given: a started game
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)

		// When: Alice plays cell 4
		game, outcome, err := manager.PlayTurn(ctx, "s1", 4)

		// Then: the game continues with Bob to move
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeContinued, outcome.Kind)
		assert.Equal(t, "Bob", game.CurrentPlayer().Name())

		stored, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, entity.MarkerX, stored.Board().Cells()[4])
	})

	t.Run("Second move on the same cell is an invalid move", func(t *testing.T) {
		// Given: Alice has played cell 0
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)
		_, _, err = manager.PlayTurn(ctx, "s1", 0)
		require.NoError(t, err)

		// When: Bob plays cell 0
		game, outcome, err := manager.PlayTurn(ctx, "s1", 0)

		// Then: no error, but an invalid move outcome and Bob keeps the turn
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeInvalidMove, outcome.Kind)
		require.ErrorIs(t, outcome.Err, apperror.ErrCellOccupied)
		assert.Equal(t, "Bob", game.CurrentPlayer().Name())
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: Alice is one move from the first column
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)
		for _, cell := range []int{0, 1, 3, 4} {
			_, _, err = manager.PlayTurn(ctx, "s1", cell)
			require.NoError(t, err)
		}

		// When: Alice plays cell 6
		game, outcome, err := manager.PlayTurn(ctx, "s1", 6)

		// Then: Alice wins and the finished game is stored
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWin, outcome.Kind)
		assert.Equal(t, "Alice", outcome.Winner.Name())
		assert.True(t, game.IsGameOver())

		stored, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, stored.IsGameOver())

		// When: another move arrives
		_, outcome, err = manager.PlayTurn(ctx, "s1", 8)

		// Then: it is ignored
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeIgnored, outcome.Kind)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager := newManager()

		game, _, err := manager.PlayTurn(ctx, "missing", 0)

		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
		assert.Nil(t, game)
	})

	t.Run("Invalid move is not saved", func(t *testing.T) {
		// Given: a repository holding a game where cell 0 is taken
		game := entity.NewGame("Alice", "Bob")
		game.PlayTurn(0)

		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "s1").Return(game, nil).Once()
		manager := NewGameManager(newTestLogger(), repo)

		// When: cell 0 is played again
		_, outcome, err := manager.PlayTurn(ctx, "s1", 0)

		// Then: Save is never called
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeInvalidMove, outcome.Kind)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Returns error if gameRepo.GetByID fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "s1").Return(nil, errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		game, _, err := manager.PlayTurn(ctx, "s1", 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})

	t.Run("Concurrent moves are serialized", func(t *testing.T) {
		// Given: a started game
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)

		// When: four distinct non-winning cells are played concurrently
		var wg sync.WaitGroup
		for _, cell := range []int{0, 1, 5, 6} {
			wg.Add(1)
			go func(cell int) {
				defer wg.Done()
				_, _, playErr := manager.PlayTurn(ctx, "s1", cell)
				assert.NoError(t, playErr)
			}(cell)
		}
		wg.Wait()

		// Then: every move landed and turns alternated two by two
		game, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 4, game.Board().Filled())
		assert.Equal(t, "Alice", game.CurrentPlayer().Name())
	})
}

func TestGameManager_ResetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Reset after a tie", func(t *testing.T) {
		// Given: a tied game
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)

		var outcome entity.Outcome
		for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			_, outcome, err = manager.PlayTurn(ctx, "s1", cell)
			require.NoError(t, err)
		}
		require.Equal(t, entity.OutcomeTie, outcome.Kind)

		// When: the game is reset
		game, err := manager.ResetGame(ctx, "s1")

		// Then: the board is empty, Alice moves and the players are kept
		require.NoError(t, err)
		assert.False(t, game.IsGameOver())
		assert.Equal(t, 0, game.Board().Filled())
		assert.Equal(t, "Alice", game.CurrentPlayer().Name())
		assert.Equal(t, "Bob", game.Players()[1].Name())

		stored, err := manager.GetGame(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager := newManager()

		_, err := manager.ResetGame(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})
}

func TestGameManager_EndGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes the game", func(t *testing.T) {
		// Given: a started game
		manager := newManager()
		_, err := manager.NewGame(ctx, "s1", "Alice", "Bob")
		require.NoError(t, err)

		// When: the game is ended
		err = manager.EndGame(ctx, "s1")

		// Then: the session has no game anymore
		require.NoError(t, err)
		_, err = manager.GetGame(ctx, "s1")
		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager := newManager()

		err := manager.EndGame(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})

	t.Run("Returns error if gameRepo.DeleteByID fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "s1").Return(errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		err := manager.EndGame(ctx, "s1")

		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})
}
