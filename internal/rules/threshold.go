package rules

import (
	"fmt"
	"strings"

	"github.com/lox/openface/poker"
)

// Threshold is a minimum hand: a category and the lowest primary rank that
// qualifies within it. Any stronger category also qualifies.
type Threshold struct {
	Category poker.Category
	Rank     poker.Rank
}

// AtLeast builds a threshold that any hand of the category meets.
func AtLeast(c poker.Category) Threshold {
	return Threshold{Category: c, Rank: poker.Two}
}

// Meets reports whether h reaches t.
func Meets[P poker.Position](h poker.HandRank[P], t Threshold) bool {
	if h.IsZero() {
		return false
	}
	if h.Category() != t.Category {
		return h.Category() > t.Category
	}
	return h.Primary() >= t.Rank
}

// compare orders thresholds from easiest to hardest.
func (t Threshold) compare(o Threshold) int {
	switch {
	case t.Category != o.Category:
		if t.Category > o.Category {
			return 1
		}
		return -1
	case t.Rank > o.Rank:
		return 1
	case t.Rank < o.Rank:
		return -1
	}
	return 0
}

func (t Threshold) String() string {
	switch {
	case t.Rank == poker.Two && t.Category != poker.Pair:
		switch t.Category {
		case poker.ThreeOfAKind:
			return "trips"
		case poker.FourOfAKind:
			return "quads"
		}
		return t.Category.Key()
	case t.Category == poker.Pair:
		return strings.Repeat(t.Rank.String(), 2)
	case t.Category == poker.ThreeOfAKind:
		return strings.Repeat(t.Rank.String(), 3)
	case t.Category == poker.FourOfAKind:
		return strings.Repeat(t.Rank.String(), 4)
	}
	return fmt.Sprintf("%s:%s", t.Category.Key(), t.Rank)
}

// MarshalText implements encoding.TextMarshaler.
func (t Threshold) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Threshold) UnmarshalText(text []byte) error {
	parsed, err := ParseThreshold(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseThreshold accepts repeated ranks ("QQ", "KKK", "2222") or a category
// key ("trips", "full_house").
func ParseThreshold(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Threshold{}, fmt.Errorf("empty threshold")
	}
	if t, ok := parseRepeated(strings.ToUpper(s)); ok {
		return t, nil
	}
	c, err := poker.ParseCategory(s)
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid threshold %q", s)
	}
	return AtLeast(c), nil
}

func parseRepeated(s string) (Threshold, bool) {
	if len(s) < 2 || len(s) > 4 || strings.Count(s, s[:1]) != len(s) {
		return Threshold{}, false
	}
	card, err := poker.ParseCard(s[:1] + "s")
	if err != nil {
		return Threshold{}, false
	}
	cats := map[int]poker.Category{2: poker.Pair, 3: poker.ThreeOfAKind, 4: poker.FourOfAKind}
	return Threshold{Category: cats[len(s)], Rank: card.Rank}, true
}
