package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

type OutcomeKind int

const (
	OutcomeContinued OutcomeKind = iota
	OutcomeInvalidMove
	OutcomeWin
	OutcomeTie
	OutcomeIgnored
)

const (
	messageTie         = "It's a tie!"
	messageSpotTaken   = "Spot taken!"
	messageInvalidCell = "Invalid cell!"
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeContinued:   "continued",
	OutcomeInvalidMove: "invalid_move",
	OutcomeWin:         "win",
	OutcomeTie:         "tie",
	OutcomeIgnored:     "ignored",
}

func (that OutcomeKind) String() string {
	if name, ok := outcomeNames[that]; ok {
		return name
	}

	return fmt.Sprintf("outcome(%d)", int(that))
}

// Outcome is the result of a single PlayTurn call.
// Winner is set only for OutcomeWin, Err only for OutcomeInvalidMove and OutcomeIgnored.
type Outcome struct {
	Kind   OutcomeKind
	Winner Player
	Err    error
}

func continued() Outcome {
	return Outcome{Kind: OutcomeContinued}
}

func invalidMove(err error) Outcome {
	return Outcome{Kind: OutcomeInvalidMove, Err: err}
}

func win(player Player) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: player}
}

func tie() Outcome {
	return Outcome{Kind: OutcomeTie}
}

func ignored() Outcome {
	return Outcome{Kind: OutcomeIgnored, Err: apperror.ErrGameFinished}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeTie
}

// ShowReplay reports whether the presentation should offer a replay.
func (that Outcome) ShowReplay() bool {
	return that.IsTerminal()
}

// Message is the text the presentation shows for this outcome, empty when there is nothing to say.
func (that Outcome) Message() string {
	switch that.Kind {
	case OutcomeWin:
		return that.Winner.Name() + " wins!"
	case OutcomeTie:
		return messageTie
	case OutcomeInvalidMove:
		if errors.Is(that.Err, apperror.ErrInvalidCell) {
			return messageInvalidCell
		}
		return messageSpotTaken
	default:
		return ""
	}
}
