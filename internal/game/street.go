package game

import (
	"fmt"

	"github.com/lox/openface/poker"
)

// Street is one row of a board: an append-only sequence of at most Cap cards.
type Street struct {
	row   poker.Row
	cards [5]poker.Card
	n     int
}

func newStreet(row poker.Row) Street {
	return Street{row: row}
}

// Row returns which row this street is.
func (s Street) Row() poker.Row { return s.row }

// Cap returns the number of cards the street holds when full.
func (s Street) Cap() int { return s.row.Size() }

// Len returns the number of placed cards.
func (s Street) Len() int { return s.n }

// Free returns the number of empty slots.
func (s Street) Free() int { return s.Cap() - s.n }

// Full reports whether no more cards fit.
func (s Street) Full() bool { return s.n == s.Cap() }

// Cards returns a copy of the placed cards in placement order.
func (s Street) Cards() []poker.Card {
	out := make([]poker.Card, s.n)
	copy(out, s.cards[:s.n])
	return out
}

// Place appends a card.
func (s *Street) Place(c poker.Card) error {
	if s.Full() {
		return fmt.Errorf("%s: %w", s.row, ErrIllegalDestination)
	}
	s.cards[s.n] = c
	s.n++
	return nil
}

// pop removes the most recently placed card. Only undo uses it.
func (s *Street) pop() (poker.Card, bool) {
	if s.n == 0 {
		return poker.Card{}, false
	}
	s.n--
	c := s.cards[s.n]
	s.cards[s.n] = poker.Card{}
	return c, true
}
