package game

import (
	"fmt"

	"github.com/lox/openface/poker"
)

// LegalDestinations lists the rows that can take c, top first.
func LegalDestinations(b *Board, c poker.Card) ([]poker.Row, error) {
	if b.Complete() {
		return nil, ErrBoardComplete
	}
	if b.Contains(c) {
		return nil, fmt.Errorf("%s: %w", c, poker.ErrDuplicateCard)
	}
	rows := make([]poker.Row, 0, 3)
	for _, r := range poker.Rows {
		if !b.streets[r].Full() {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// IsFouled reports whether a complete board's rows fail to ascend from top to
// bottom on ladder. A forfeited board is always fouled.
func IsFouled(b *Board, ladder poker.Ladder) (bool, error) {
	if !b.Complete() {
		return false, ErrBoardIncomplete
	}
	if b.forfeit {
		return true, nil
	}
	h, err := b.Evaluate()
	if err != nil {
		return false, err
	}
	top, err := poker.StrengthOf(h.Top, ladder)
	if err != nil {
		return false, err
	}
	mid, err := poker.StrengthOf(h.Middle, ladder)
	if err != nil {
		return false, err
	}
	bot, err := poker.StrengthOf(h.Bottom, ladder)
	if err != nil {
		return false, err
	}
	return top.Compare(mid) > 0 || mid.Compare(bot) > 0, nil
}
