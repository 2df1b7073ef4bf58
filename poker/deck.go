package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when a draw asks for more cards than remain.
// Within a round this means card accounting is broken.
var ErrDeckExhausted = errors.New("poker: deck exhausted")

// Deck is a shuffled 52-card source. Cards live in a fixed array and a cursor
// separates drawn cards from the rest, so a card is either in the deck or out of
// it, never both. The order of undrawn cards is not observable.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a deck shuffled with rng.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{rng: rng}
	copy(d.cards[:], FullDeck())
	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck whose first draws are top, in order, followed by
// the remaining cards shuffled with rng. Used to set up known deals in tests and replays.
func NewStackedDeck(rng *rand.Rand, top []Card) (*Deck, error) {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	var seen [52]bool
	d := &Deck{rng: rng}
	for i, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("stacked card %d: invalid card", i)
		}
		if seen[c.index()] {
			return nil, fmt.Errorf("stacked card %s: %w", c, ErrDuplicateCard)
		}
		seen[c.index()] = true
		d.cards[i] = c
	}
	rest := d.cards[len(top):len(top)]
	for _, c := range FullDeck() {
		if !seen[c.index()] {
			rest = append(rest, c)
		}
	}
	tail := d.cards[len(top):]
	for i := len(tail) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		tail[i], tail[j] = tail[j], tail[i]
	}
	return d, nil
}

// Shuffle gathers every card back and shuffles using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// DrawN removes and returns n cards. Nothing is drawn if fewer than n remain.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, d.Remaining(), ErrDeckExhausted)
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Return puts back the most recently drawn cards, in the order they were drawn.
// Any card that was not among the last draws is rejected and the deck is unchanged.
func (d *Deck) Return(cards ...Card) error {
	if len(cards) > d.next {
		return fmt.Errorf("return %d cards with %d drawn", len(cards), d.next)
	}
	start := d.next - len(cards)
	for i, c := range cards {
		if d.cards[start+i] != c {
			return fmt.Errorf("card %s was not among the last %d drawn", c, len(cards))
		}
	}
	d.next = start
	return nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Drawn returns the number of cards dealt since the last shuffle.
func (d *Deck) Drawn() int {
	return d.next
}
