package poker

import (
	"fmt"
	"strings"

	ph "github.com/paulhankin/poker"
)

// toPH converts a card to the paulhankin/poker representation (ace is rank 1 there).
func toPH(c Card) (ph.Card, error) {
	var s ph.Suit
	switch c.Suit {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	case Spades:
		s = ph.Spade
	default:
		return 0, fmt.Errorf("invalid suit %d", c.Suit)
	}
	r := ph.Rank(c.Rank)
	if c.Rank == Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}

func toPHSlice(cards []Card) ([]ph.Card, error) {
	out := make([]ph.Card, len(cards))
	for i, c := range cards {
		pc, err := toPH(c)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

// Describe returns the category label of a 3 or 5 card hand followed by its
// compact rank notation, e.g. "full house (999-22)".
func Describe(cards []Card) (string, error) {
	var label string
	switch len(cards) {
	case 3:
		h, err := Evaluate[AtTop](cards)
		if err != nil {
			return "", err
		}
		label = h.Label()
	case 5:
		h, err := Evaluate[AtBottom](cards)
		if err != nil {
			return "", err
		}
		label = h.Label()
	default:
		return "", fmt.Errorf("describe %d cards: %w", len(cards), ErrInvalidHandSize)
	}
	pcs, err := toPHSlice(cards)
	if err != nil {
		return "", err
	}
	compact, err := ph.Describe(pcs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", strings.ToLower(label), compact), nil
}

// Score returns a fast numeric strength for a 3 or 5 card hand. Scores of
// both sizes share one scale in which higher is stronger, and three-card hands
// are scored like five-card hands with two worthless kickers. Used by search
// code that needs many evaluations; rules decisions use Evaluate and the Ladder.
func Score(cards []Card) (int16, error) {
	pcs, err := toPHSlice(cards)
	if err != nil {
		return 0, err
	}
	switch len(pcs) {
	case 3:
		var a [3]ph.Card
		copy(a[:], pcs)
		return ph.Eval3(&a), nil
	case 5:
		var a [5]ph.Card
		copy(a[:], pcs)
		return ph.Eval5(&a), nil
	}
	return 0, fmt.Errorf("score %d cards: %w", len(cards), ErrInvalidHandSize)
}
