package game

import (
	"errors"
	"fmt"

	"github.com/lox/openface/poker"
)

var (
	ErrBoardComplete      = errors.New("board is complete")
	ErrIllegalDestination = errors.New("row is full")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrAgentTimeout       = errors.New("agent timed out")
	ErrBoardIncomplete    = errors.New("board is incomplete")
	ErrCardNotPending     = errors.New("card is not in hand")
	ErrBusy               = errors.New("another move is in progress")
	ErrRoundClosed        = errors.New("round is closed")
	ErrRoundInProgress    = errors.New("round in progress")
	ErrUnknownSeat        = errors.New("unknown seat")
	ErrInvalidPlacement   = errors.New("invalid placement")
)

// Kind classifies an error by who can fix it.
type Kind uint8

const (
	// KindInternal is an engine defect, such as broken card accounting.
	KindInternal Kind = iota
	// KindRules is a move the player can correct.
	KindRules
	// KindProtocol is a collaborator acting out of turn or against a closed round.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindRules:
		return "rules"
	case KindProtocol:
		return "protocol"
	default:
		return "internal"
	}
}

// MoveError describes a rejected operation.
type MoveError struct {
	Op   string
	Seat int
	Kind Kind
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s seat %d: %v", e.Op, e.Seat, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func moveErr(op string, seat int, err error) error {
	return &MoveError{Op: op, Seat: seat, Kind: classify(err), Err: err}
}

// KindOf classifies err. Errors that are neither a MoveError nor a known
// sentinel are internal.
func KindOf(err error) Kind {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrBoardComplete),
		errors.Is(err, ErrIllegalDestination),
		errors.Is(err, ErrCardNotPending),
		errors.Is(err, ErrInvalidPlacement),
		errors.Is(err, ErrNothingToUndo),
		errors.Is(err, ErrBoardIncomplete),
		errors.Is(err, poker.ErrDuplicateCard),
		errors.Is(err, poker.ErrInvalidHandSize):
		return KindRules
	case errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrBusy),
		errors.Is(err, ErrRoundClosed),
		errors.Is(err, ErrRoundInProgress),
		errors.Is(err, ErrUnknownSeat),
		errors.Is(err, ErrAgentTimeout):
		return KindProtocol
	}
	return KindInternal
}
