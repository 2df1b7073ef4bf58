package poker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidHandSize is returned when a hand does not match its row's size.
	ErrInvalidHandSize = errors.New("poker: invalid hand size")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("poker: duplicate card")
)

// Row identifies one of the three streets of an OFC board.
type Row uint8

const (
	Top Row = iota
	Middle
	Bottom
)

// Rows lists the rows from top to bottom.
var Rows = [3]Row{Top, Middle, Bottom}

// Size returns the number of cards the row holds.
func (r Row) Size() int {
	if r == Top {
		return 3
	}
	return 5
}

func (r Row) String() string {
	switch r {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseRow accepts "top"/"middle"/"bottom" and the front/back aliases.
func ParseRow(s string) (Row, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "front", "t":
		return Top, nil
	case "middle", "mid", "m":
		return Middle, nil
	case "bottom", "back", "b":
		return Bottom, nil
	}
	return 0, fmt.Errorf("unknown row %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Row) MarshalText() ([]byte, error) {
	if r > Bottom {
		return nil, fmt.Errorf("invalid row %d", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Row) UnmarshalText(text []byte) error {
	parsed, err := ParseRow(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Category enumerates hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}

var categoryKeys = [...]string{
	"high_card", "pair", "two_pair", "three_of_a_kind", "straight",
	"flush", "full_house", "four_of_a_kind", "straight_flush",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Key returns the snake_case name used in configuration files.
func (c Category) Key() string {
	if int(c) >= len(categoryKeys) {
		return "unknown"
	}
	return categoryKeys[c]
}

// ParseCategory parses a configuration key such as "full_house".
func ParseCategory(s string) (Category, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for i, key := range categoryKeys {
		if key == k {
			return Category(i), nil
		}
	}
	switch k {
	case "trips":
		return ThreeOfAKind, nil
	case "quads":
		return FourOfAKind, nil
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

// Position ties a hand rank to the row it was evaluated for. The concrete types
// carry no data; they only make ranks from different rows distinct types.
type Position interface {
	AtTop | AtMiddle | AtBottom
	Row() Row
}

type (
	AtTop    struct{}
	AtMiddle struct{}
	AtBottom struct{}
)

func (AtTop) Row() Row    { return Top }
func (AtMiddle) Row() Row { return Middle }
func (AtBottom) Row() Row { return Bottom }

// HandRank is the strength of a hand in row P. Higher values are stronger.
// Ranks only compare with ranks of the same row type.
//
// The packed value holds the category in bits 20-23 followed by up to five
// 4-bit ranks, ordered as the tie-break sequence.
type HandRank[P Position] struct {
	value uint32
}

// Evaluate ranks cards as a hand in row P. The card count must match the row size.
func Evaluate[P Position](cards []Card) (HandRank[P], error) {
	var p P
	v, err := evaluate(cards, p.Row().Size())
	if err != nil {
		return HandRank[P]{}, fmt.Errorf("%s: %w", p.Row(), err)
	}
	return HandRank[P]{value: v}, nil
}

// MustEvaluate is Evaluate for fixtures; it panics on error.
func MustEvaluate[P Position](cards []Card) HandRank[P] {
	h, err := Evaluate[P](cards)
	if err != nil {
		panic(err)
	}
	return h
}

// Compare returns 1 if h is stronger than o, -1 if weaker, 0 on a tie.
func (h HandRank[P]) Compare(o HandRank[P]) int {
	switch {
	case h.value > o.value:
		return 1
	case h.value < o.value:
		return -1
	}
	return 0
}

// Row returns the row the rank belongs to.
func (h HandRank[P]) Row() Row {
	var p P
	return p.Row()
}

// IsZero reports whether h is the zero value rather than an evaluated hand.
func (h HandRank[P]) IsZero() bool {
	return h.value == 0
}

// Category returns the hand category.
func (h HandRank[P]) Category() Category {
	return Category(h.value >> 20)
}

// Primary returns the rank that defines the category: the pair, trips or quads
// rank, the higher pair, the high card of a straight, or the top card otherwise.
func (h HandRank[P]) Primary() Rank {
	return Rank(h.value >> 16 & 0xF)
}

// Ranks returns the tie-break sequence, most significant first.
func (h HandRank[P]) Ranks() []Rank {
	return unpackRanks(h.value)
}

// IsRoyal reports whether the hand is an ace-high straight flush.
func (h HandRank[P]) IsRoyal() bool {
	return h.Category() == StraightFlush && h.Primary() == Ace
}

// Label is the category name, with royal flushes named as such.
func (h HandRank[P]) Label() string {
	if h.IsRoyal() {
		return "Royal Flush"
	}
	return h.Category().String()
}

func (h HandRank[P]) String() string {
	if h.IsZero() {
		return "none"
	}
	ranks := h.Ranks()
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", h.Label(), strings.Join(parts, ""))
}

func unpackRanks(v uint32) []Rank {
	out := make([]Rank, 0, 5)
	for shift := 16; shift >= 0; shift -= 4 {
		r := Rank(v >> uint(shift) & 0xF)
		if r == 0 {
			break
		}
		out = append(out, r)
	}
	return out
}

type rankGroup struct {
	count int
	rank  Rank
}

func evaluate(cards []Card, size int) (uint32, error) {
	if len(cards) != size {
		return 0, fmt.Errorf("got %d cards, want %d: %w", len(cards), size, ErrInvalidHandSize)
	}

	var seen [52]bool
	var counts [15]int
	suit := cards[0].Suit
	flush := size == 5
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
		}
		if seen[c.index()] {
			return 0, fmt.Errorf("%s: %w", c, ErrDuplicateCard)
		}
		seen[c.index()] = true
		counts[c.Rank]++
		if c.Suit != suit {
			flush = false
		}
	}

	// Groups ordered by count then rank, both descending.
	groups := make([]rankGroup, 0, size)
	for n := 4; n >= 1; n-- {
		for r := Ace; r >= Two; r-- {
			if counts[r] == n {
				groups = append(groups, rankGroup{count: n, rank: r})
			}
		}
	}

	high, straight := straightHigh(groups, size)

	var cat Category
	switch {
	case straight && flush:
		cat = StraightFlush
	case groups[0].count == 4:
		cat = FourOfAKind
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count == 2:
		cat = FullHouse
	case flush:
		cat = Flush
	case straight:
		cat = Straight
	case groups[0].count == 3:
		cat = ThreeOfAKind
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		cat = TwoPair
	case groups[0].count == 2:
		cat = Pair
	default:
		cat = HighCard
	}

	v := uint32(cat) << 20
	if cat == Straight || cat == StraightFlush {
		return v | uint32(high)<<16, nil
	}
	shift := 16
	for _, g := range groups {
		v |= uint32(g.rank) << uint(shift)
		shift -= 4
	}
	return v, nil
}

// straightHigh reports the high card of a five-card straight. The wheel is five-high.
func straightHigh(groups []rankGroup, size int) (Rank, bool) {
	if size != 5 || len(groups) != 5 {
		return 0, false
	}
	top, bottom := groups[0].rank, groups[4].rank
	if top-bottom == 4 {
		return top, true
	}
	if top == Ace && groups[1].rank == Five && bottom == Two {
		return Five, true
	}
	return 0, false
}
