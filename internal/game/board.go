package game

import (
	"fmt"
	"strings"

	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Board is one player's three streets. Once all thirteen cards are placed it
// is complete and accepts no further cards.
type Board struct {
	streets [3]Street
	forfeit bool
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	for _, r := range poker.Rows {
		b.streets[r] = newStreet(r)
	}
	return b
}

// NewBoardFrom builds a board from row contents, e.g. for scoring a finished
// hand entered by hand. Rows may be partial.
func NewBoardFrom(top, middle, bottom []poker.Card) (*Board, error) {
	b := NewBoard()
	for i, cards := range [3][]poker.Card{top, middle, bottom} {
		for _, c := range cards {
			if err := b.Place(c, poker.Rows[i]); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Street returns a copy of a row.
func (b *Board) Street(r poker.Row) Street {
	return b.streets[r]
}

// Len returns the number of cards on the board.
func (b *Board) Len() int {
	n := 0
	for i := range b.streets {
		n += b.streets[i].Len()
	}
	return n
}

// Complete reports whether every row is full.
func (b *Board) Complete() bool {
	return b.Len() == rules.BoardSize
}

// Contains reports whether c is already on the board.
func (b *Board) Contains(c poker.Card) bool {
	for i := range b.streets {
		s := &b.streets[i]
		for _, have := range s.cards[:s.n] {
			if have == c {
				return true
			}
		}
	}
	return false
}

// Cards returns every placed card, top row first.
func (b *Board) Cards() []poker.Card {
	out := make([]poker.Card, 0, rules.BoardSize)
	for i := range b.streets {
		out = append(out, b.streets[i].Cards()...)
	}
	return out
}

// Place puts c on row r.
func (b *Board) Place(c poker.Card, r poker.Row) error {
	if b.Complete() {
		return ErrBoardComplete
	}
	if r > poker.Bottom {
		return fmt.Errorf("row %d: %w", r, ErrIllegalDestination)
	}
	if !c.Valid() {
		return fmt.Errorf("card %d/%d: %w", c.Rank, c.Suit, ErrInvalidPlacement)
	}
	if b.Contains(c) {
		return fmt.Errorf("%s: %w", c, poker.ErrDuplicateCard)
	}
	return b.streets[r].Place(c)
}

// unplace removes the last card placed on r.
func (b *Board) unplace(r poker.Row, want poker.Card) error {
	c, ok := b.streets[r].pop()
	if !ok || c != want {
		if ok {
			_ = b.streets[r].Place(c)
		}
		return fmt.Errorf("%s is not the last card on %s", want, r)
	}
	return nil
}

// Forfeit marks the board as fouled regardless of its hands.
func (b *Board) Forfeit() { b.forfeit = true }

// Forfeited reports whether the board was forfeited.
func (b *Board) Forfeited() bool { return b.forfeit }

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Hands holds the evaluated rows of a complete board.
type Hands struct {
	Top    poker.HandRank[poker.AtTop]
	Middle poker.HandRank[poker.AtMiddle]
	Bottom poker.HandRank[poker.AtBottom]
}

// Evaluate ranks each row of a complete board.
func (b *Board) Evaluate() (Hands, error) {
	if !b.Complete() {
		return Hands{}, ErrBoardIncomplete
	}
	var (
		h   Hands
		err error
	)
	if h.Top, err = poker.Evaluate[poker.AtTop](b.streets[poker.Top].Cards()); err != nil {
		return Hands{}, err
	}
	if h.Middle, err = poker.Evaluate[poker.AtMiddle](b.streets[poker.Middle].Cards()); err != nil {
		return Hands{}, err
	}
	if h.Bottom, err = poker.Evaluate[poker.AtBottom](b.streets[poker.Bottom].Cards()); err != nil {
		return Hands{}, err
	}
	return h, nil
}

// Fouled reports whether the complete board breaks row order under ladder.
func (b *Board) Fouled(ladder poker.Ladder) (bool, error) {
	return IsFouled(b, ladder)
}

// RowRoyalties holds the royalty earned by each row, indexed by poker.Row.
type RowRoyalties [3]int

// Total sums the rows.
func (r RowRoyalties) Total() int {
	return r[0] + r[1] + r[2]
}

// Royalties prices each row of a complete board. Fouls are not considered
// here; the scorer decides whether a fouled board keeps them.
func (b *Board) Royalties(t rules.RoyaltyTable) (RowRoyalties, error) {
	h, err := b.Evaluate()
	if err != nil {
		return RowRoyalties{}, err
	}
	return RowRoyalties{t.Top(h.Top), t.Middle(h.Middle), t.Bottom(h.Bottom)}, nil
}

// BoardView is the serialisable form of a board.
type BoardView struct {
	Top     []poker.Card `json:"top"`
	Middle  []poker.Card `json:"middle"`
	Bottom  []poker.Card `json:"bottom"`
	Forfeit bool         `json:"forfeit,omitempty"`
}

// View returns a copy of the board's contents.
func (b *Board) View() BoardView {
	return BoardView{
		Top:     b.streets[poker.Top].Cards(),
		Middle:  b.streets[poker.Middle].Cards(),
		Bottom:  b.streets[poker.Bottom].Cards(),
		Forfeit: b.forfeit,
	}
}

// Board rebuilds a board from a view.
func (v BoardView) Board() (*Board, error) {
	b, err := NewBoardFrom(v.Top, v.Middle, v.Bottom)
	if err != nil {
		return nil, err
	}
	b.forfeit = v.Forfeit
	return b, nil
}

// Row returns the cards of one row.
func (v BoardView) Row(r poker.Row) []poker.Card {
	switch r {
	case poker.Top:
		return v.Top
	case poker.Middle:
		return v.Middle
	default:
		return v.Bottom
	}
}

func (b *Board) String() string {
	parts := make([]string, 3)
	for i := range b.streets {
		s := &b.streets[i]
		cells := make([]string, s.Cap())
		for j := range cells {
			if j < s.n {
				cells[j] = s.cards[j].String()
			} else {
				cells[j] = "--"
			}
		}
		parts[i] = strings.Join(cells, " ")
	}
	return strings.Join(parts, " / ")
}
