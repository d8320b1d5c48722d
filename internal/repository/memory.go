package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Snapshot
}

// NewMemoryGameRepository keeps games in process memory for the lifetime of the process.
// Games are stored as snapshots, so callers never share a live *entity.Game.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Snapshot),
	}
}

func (that *memoryGame) Save(_ context.Context, sessionID string, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[sessionID] = game.Snapshot()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.RLock()
	snapshot, ok := that.games[sessionID]
	that.mu.RUnlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	game, err := entity.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[sessionID]; !ok {
		return ErrGameNotFound
	}

	delete(that.games, sessionID)

	return nil
}
