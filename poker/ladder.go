package poker

import (
	"errors"
	"fmt"
)

// ErrLadderIncomplete is returned when a ladder has no rung for a hand.
var ErrLadderIncomplete = errors.New("poker: ladder has no rung for hand")

// LadderKey identifies a category at a given hand size.
type LadderKey struct {
	Size     int
	Category Category
}

// Ladder places every (hand size, category) pair on a single scale so that a
// three-card top hand can be checked against a five-card middle hand. It is
// used only for foul detection; scoring never compares across rows.
//
// Hands on the same rung are ordered by their rank groups, with the missing
// kickers of a shorter hand counting below any card.
type Ladder map[LadderKey]int

// Rung spacing leaves room to slot three-card hands between five-card categories.
const rungStep = 10

// PokerLadder orders hands by plain poker category: a top pair sits with a
// five-card pair and top trips sit with five-card trips.
func PokerLadder() Ladder {
	l := fiveCardRungs()
	l[LadderKey{3, HighCard}] = int(HighCard) * rungStep
	l[LadderKey{3, Pair}] = int(Pair) * rungStep
	l[LadderKey{3, ThreeOfAKind}] = int(ThreeOfAKind) * rungStep
	return l
}

// StrictLadder is PokerLadder except that top trips sit between a five-card
// straight and a flush: trips on top need a flush or better behind them.
func StrictLadder() Ladder {
	l := PokerLadder()
	l[LadderKey{3, ThreeOfAKind}] = int(Straight)*rungStep + rungStep/2
	return l
}

func fiveCardRungs() Ladder {
	l := make(Ladder, 12)
	for c := HighCard; c <= StraightFlush; c++ {
		l[LadderKey{5, c}] = int(c) * rungStep
	}
	return l
}

// Validate checks that every reachable hand has a rung.
func (l Ladder) Validate() error {
	for _, c := range []Category{HighCard, Pair, ThreeOfAKind} {
		if _, ok := l[LadderKey{3, c}]; !ok {
			return fmt.Errorf("3-card %s: %w", c, ErrLadderIncomplete)
		}
	}
	for c := HighCard; c <= StraightFlush; c++ {
		if _, ok := l[LadderKey{5, c}]; !ok {
			return fmt.Errorf("5-card %s: %w", c, ErrLadderIncomplete)
		}
	}
	return nil
}

// Strength is a position on a Ladder. It is the only hand value that can be
// compared across rows.
type Strength struct {
	rung  int
	ranks uint32
}

// Compare returns 1 if s is stronger than o, -1 if weaker, 0 if level.
func (s Strength) Compare(o Strength) int {
	switch {
	case s.rung != o.rung:
		if s.rung > o.rung {
			return 1
		}
		return -1
	case s.ranks > o.ranks:
		return 1
	case s.ranks < o.ranks:
		return -1
	}
	return 0
}

// Rung returns the ladder rung.
func (s Strength) Rung() int {
	return s.rung
}

// StrengthOf projects a hand rank onto the ladder.
func StrengthOf[P Position](h HandRank[P], l Ladder) (Strength, error) {
	if h.IsZero() {
		return Strength{}, fmt.Errorf("%s: unevaluated hand", h.Row())
	}
	key := LadderKey{Size: h.Row().Size(), Category: h.Category()}
	rung, ok := l[key]
	if !ok {
		return Strength{}, fmt.Errorf("%d-card %s: %w", key.Size, key.Category, ErrLadderIncomplete)
	}
	return Strength{rung: rung, ranks: h.value & 0xFFFFF}, nil
}
