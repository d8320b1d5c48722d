package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidMarker     = errors.New("invalid marker")
	ErrNoActiveGame      = errors.New("no active game")
	ErrInvalidPlayerName = errors.New("player name is required")
	ErrCorruptSnapshot   = errors.New("corrupt game snapshot")
	ErrEmptySession      = errors.New("session id is empty")
)
