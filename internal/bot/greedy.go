package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/rules"
)

// GreedyBot places the card and row pair that scores best against its
// placement rules, and searches fantasy hands for the richest legal board.
type GreedyBot struct {
	recognizer *SituationRecognizer
	rules      *rules.Rules
	logger     *log.Logger
}

// NewGreedyBot creates a new GreedyBot instance
func NewGreedyBot(logger *log.Logger, r *rules.Rules) *GreedyBot {
	return &GreedyBot{recognizer: NewSituationRecognizer(), rules: r, logger: logger}
}

// ChooseMove scores every pending card in every legal row. Ties keep the
// earliest candidate, so the choice is deterministic.
func (b *GreedyBot) ChooseMove(ctx context.Context, req game.MoveRequest) (game.Move, error) {
	if len(req.Pending) == 0 || len(req.Legal) == 0 {
		return game.Move{}, game.ErrBoardComplete
	}
	var (
		best      game.Move
		bestScore int
		reasons   []string
		found     bool
	)
	for _, c := range req.Pending {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		for _, r := range req.Legal {
			score, applied := b.recognizer.Evaluate(Situation{Card: c, Row: r, Board: req.Board})
			if !found || score > bestScore {
				best, bestScore, reasons, found = game.Move{Card: c, Row: r}, score, applied, true
			}
		}
	}
	b.logger.Debug("greedy-bot move",
		"seat", req.Seat,
		"card", best.Card,
		"row", best.Row,
		"score", bestScore,
		"rules", reasons)
	return best, nil
}

// ChooseFantasy searches for the highest-value legal arrangement.
func (b *GreedyBot) ChooseFantasy(ctx context.Context, req game.FantasyRequest) (game.Placement, error) {
	p, value, err := SolveFantasy(ctx, req.Cards, b.rules)
	if err != nil {
		return game.Placement{}, err
	}
	b.logger.Debug("greedy-bot fantasy", "seat", req.Seat, "cards", len(req.Cards), "value", value)
	return p, nil
}
