package game

import (
	"fmt"

	"github.com/lox/openface/internal/rules"
)

// FantasyPhase is the state of a player's fantasy land machine.
type FantasyPhase uint8

const (
	// FantasyNormal players are dealt incrementally.
	FantasyNormal FantasyPhase = iota
	// FantasyPending players have qualified and receive a full hand next round.
	FantasyPending
	// FantasyActive players are placing a fantasy hand this round.
	FantasyActive
)

func (p FantasyPhase) String() string {
	switch p {
	case FantasyNormal:
		return "normal"
	case FantasyPending:
		return "pending"
	case FantasyActive:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// FantasyState is a player's fantasy land position. Cards is the hand size
// owed while Pending or being played while Active. Streak counts consecutive
// fantasy hands earned; it does not affect scoring.
type FantasyState struct {
	Phase  FantasyPhase `json:"phase"`
	Cards  int          `json:"cards,omitempty"`
	Streak int          `json:"streak,omitempty"`
}

// Deal moves a Pending player to Active at the start of a round. Normal
// players are unchanged.
func (s FantasyState) Deal() (FantasyState, error) {
	switch s.Phase {
	case FantasyNormal:
		return s, nil
	case FantasyPending:
		return FantasyState{Phase: FantasyActive, Cards: s.Cards, Streak: s.Streak}, nil
	case FantasyActive:
		return s, fmt.Errorf("fantasy: deal while already active")
	default:
		return s, fmt.Errorf("fantasy: unknown phase %s", s.Phase)
	}
}

// Restore undoes Deal for a round that ended without scoring, so a player
// does not lose an earned fantasy hand to a cancelled round.
func (s FantasyState) Restore() FantasyState {
	if s.Phase == FantasyActive {
		return FantasyState{Phase: FantasyPending, Cards: s.Cards, Streak: s.Streak}
	}
	return s
}

// Settle applies a completed board at round end. A foul always returns the
// player to Normal with the streak cleared.
func (s FantasyState) Settle(b *Board, r *rules.Rules) (FantasyState, error) {
	fouled, err := IsFouled(b, r.Ladder())
	if err != nil {
		return s, err
	}
	if fouled {
		return FantasyState{Phase: FantasyNormal}, nil
	}
	h, err := b.Evaluate()
	if err != nil {
		return s, err
	}

	switch s.Phase {
	case FantasyNormal:
		n, ok := r.Fantasy.EntryCards(h.Top)
		if !ok {
			return FantasyState{Phase: FantasyNormal}, nil
		}
		return FantasyState{Phase: FantasyPending, Cards: n, Streak: 1}, nil
	case FantasyActive:
		if !r.Fantasy.Stays(h.Top, h.Middle, h.Bottom) {
			return FantasyState{Phase: FantasyNormal}, nil
		}
		return FantasyState{Phase: FantasyPending, Cards: r.Fantasy.RepeatCards, Streak: s.Streak + 1}, nil
	case FantasyPending:
		return s, fmt.Errorf("fantasy: settle while pending, deal was skipped")
	default:
		return s, fmt.Errorf("fantasy: unknown phase %s", s.Phase)
	}
}
