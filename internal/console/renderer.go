// Package console is the terminal presentation of a hot-seat game.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	msgNewGame = "New game! Let's play!"
	rowDivider = "---+---+---"
)

// Renderer draws games and messages to a terminal.
type Renderer struct {
	out io.Writer

	markers map[string]*color.Color
	winning *color.Color
	hint    *color.Color
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out: out,
		markers: map[string]*color.Color{
			entity.MarkerX: color.New(color.FgCyan, color.Bold),
			entity.MarkerO: color.New(color.FgMagenta, color.Bold),
		},
		winning: color.New(color.FgGreen, color.Bold),
		hint:    color.New(color.FgYellow),
	}
}

// Board draws the grid; empty cells show their index and a winning line is highlighted.
func (that *Renderer) Board(board *entity.Board) {
	cells := board.Cells()

	highlighted := make(map[int]bool, len(entity.WinningLines[0]))
	if _, line, ok := board.WinningLine(); ok {
		for _, cell := range line {
			highlighted[cell] = true
		}
	}

	var sb strings.Builder

	sb.WriteString("\n")

	for row := 0; row < 3; row++ {
		parts := make([]string, 0, 3)

		for col := 0; col < 3; col++ {
			i := row*3 + col
			parts = append(parts, " "+that.cell(i, cells[i], highlighted[i])+" ")
		}

		sb.WriteString(strings.Join(parts, "|"))
		sb.WriteString("\n")

		if row < 2 {
			sb.WriteString(rowDivider)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")

	fmt.Fprint(that.out, sb.String())
}

func (that *Renderer) cell(index int, marker string, highlighted bool) string {
	if marker == entity.EmptyCell {
		return strconv.Itoa(index)
	}

	if highlighted {
		return that.winning.Sprint(marker)
	}

	if c, ok := that.markers[marker]; ok {
		return c.Sprint(marker)
	}

	return marker
}

// Outcome prints the message a move produced, if any.
func (that *Renderer) Outcome(outcome entity.Outcome) {
	msg := outcome.Message()
	if msg == "" {
		return
	}

	switch outcome.Kind {
	case entity.OutcomeWin, entity.OutcomeTie:
		that.Message(that.winning.Sprint(msg))
	default:
		that.Hint(msg)
	}
}

func (that *Renderer) Prompt(format string, args ...any) {
	fmt.Fprintf(that.out, format, args...)
}

func (that *Renderer) Message(msg string) {
	fmt.Fprintln(that.out, msg)
}

func (that *Renderer) Hint(msg string) {
	fmt.Fprintln(that.out, that.hint.Sprint(msg))
}

// PlayerLabel renders "name (X)" with the marker in its color.
func (that *Renderer) PlayerLabel(player entity.Player) string {
	marker := player.Marker()
	if c, ok := that.markers[marker]; ok {
		marker = c.Sprint(marker)
	}

	return fmt.Sprintf("%s (%s)", player.Name(), marker)
}
