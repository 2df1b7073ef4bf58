package game

import (
	"context"
	"time"

	"github.com/lox/openface/poker"
)

// Agent chooses placements for one seat. Implementations may block (search,
// network round trips) and must return promptly once ctx is done.
type Agent interface {
	// ChooseMove places one pending card during incremental play.
	ChooseMove(ctx context.Context, req MoveRequest) (Move, error)
	// ChooseFantasy arranges a whole fantasy hand in one submission.
	ChooseFantasy(ctx context.Context, req FantasyRequest) (Placement, error)
}

// OpponentView is what a seat may see of another seat.
type OpponentView struct {
	Seat    int       `json:"seat"`
	Name    string    `json:"name"`
	Board   BoardView `json:"board"`
	Fantasy bool      `json:"fantasy,omitempty"`
}

// MoveRequest describes a decision during incremental play.
type MoveRequest struct {
	RoundID   string         `json:"round_id"`
	Seat      int            `json:"seat"`
	Board     BoardView      `json:"board"`
	Pending   []poker.Card   `json:"pending"`
	Legal     []poker.Row    `json:"legal"`
	Opponents []OpponentView `json:"opponents"`
	ThinkTime time.Duration  `json:"think_time"`
}

// Move places Card on Row.
type Move struct {
	Card poker.Card `json:"card"`
	Row  poker.Row  `json:"row"`
}

// FantasyRequest describes a fantasy land deal.
type FantasyRequest struct {
	RoundID   string         `json:"round_id"`
	Seat      int            `json:"seat"`
	Cards     []poker.Card   `json:"cards"`
	Opponents []OpponentView `json:"opponents"`
	ThinkTime time.Duration  `json:"think_time"`
}

// Placement is a full board chosen from a fantasy hand. Cards left out are
// discarded.
type Placement struct {
	Top    []poker.Card `json:"top"`
	Middle []poker.Card `json:"middle"`
	Bottom []poker.Card `json:"bottom"`
}

// Cards returns the placed cards, top row first.
func (p Placement) Cards() []poker.Card {
	out := make([]poker.Card, 0, len(p.Top)+len(p.Middle)+len(p.Bottom))
	out = append(out, p.Top...)
	out = append(out, p.Middle...)
	return append(out, p.Bottom...)
}
