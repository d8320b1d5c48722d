package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	MarkerX = "X"
	MarkerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinningLines lists every line that ends the game, in evaluation order: rows, columns, diagonals.
var WinningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the 3x3 grid, addressed row-major by cell index 0..8.
type Board struct {
	cells [BoardSize]string
}

func NewBoard() *Board {
	return &Board{}
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize]string {
	return that.cells
}

func (that *Board) Cell(cell int) (string, error) {
	if !IsValidCell(cell) {
		return EmptyCell, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return that.cells[cell], nil
}

// Set writes marker, X or O, into an empty cell. An occupied cell is never overwritten.
func (that *Board) Set(cell int, marker string) error {
	if !IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if marker != MarkerX && marker != MarkerO {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMarker, marker)
	}

	if that.cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell] = marker

	return nil
}

// Reset clears every cell and returns the fresh grid.
func (that *Board) Reset() [BoardSize]string {
	that.cells = [BoardSize]string{}
	return that.cells
}

func (that *Board) Filled() int {
	filled := 0
	for _, cell := range that.cells {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

func (that *Board) IsFull() bool {
	return that.Filled() == BoardSize
}

// WinningLine reports the first line, in WinningLines order, whose three cells hold the same marker.
func (that *Board) WinningLine() (string, [3]int, bool) {
	for _, line := range WinningLines {
		a, b, c := that.cells[line[0]], that.cells[line[1]], that.cells[line[2]]
		if a != EmptyCell && a == b && b == c {
			return a, line, true
		}
	}

	return EmptyCell, [3]int{}, false
}

func (that *Board) hasLine(marker string) bool {
	for _, line := range WinningLines {
		if that.cells[line[0]] == marker && that.cells[line[1]] == marker && that.cells[line[2]] == marker {
			return true
		}
	}

	return false
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
