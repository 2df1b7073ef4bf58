package bot

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/openface/internal/game"
)

// RandBot plays a uniformly random legal move.
type RandBot struct {
	rng    *lockedRand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: &lockedRand{rng: rng}, logger: logger}
}

// ChooseMove picks any pending card and any row with space.
func (b *RandBot) ChooseMove(_ context.Context, req game.MoveRequest) (game.Move, error) {
	if len(req.Pending) == 0 || len(req.Legal) == 0 {
		return game.Move{}, game.ErrBoardComplete
	}
	m := game.Move{
		Card: req.Pending[b.rng.IntN(len(req.Pending))],
		Row:  req.Legal[b.rng.IntN(len(req.Legal))],
	}
	b.logger.Debug("rand-bot move", "seat", req.Seat, "card", m.Card, "row", m.Row)
	return m, nil
}

// ChooseFantasy shuffles the hand and deals it into the rows.
func (b *RandBot) ChooseFantasy(_ context.Context, req game.FantasyRequest) (game.Placement, error) {
	cards := slices.Clone(req.Cards)
	if len(cards) < 13 {
		return game.Placement{}, game.ErrInvalidPlacement
	}
	b.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return game.Placement{Top: cards[:3], Middle: cards[3:8], Bottom: cards[8:13]}, nil
}
