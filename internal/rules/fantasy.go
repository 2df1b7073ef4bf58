package rules

import (
	"fmt"
	"slices"

	"github.com/lox/openface/poker"
)

// FantasyMode selects how many cards a qualifying player receives.
type FantasyMode string

const (
	// FantasyNormal deals NormalCards to every qualifier.
	FantasyNormal FantasyMode = "normal"
	// FantasyProgressive deals more cards for a stronger qualifying top hand.
	FantasyProgressive FantasyMode = "progressive"
	// FantasyOff disables fantasy land.
	FantasyOff FantasyMode = "off"
)

// FantasyStep is one rung of the progressive card table.
type FantasyStep struct {
	Threshold Threshold
	Cards     int
}

// FantasyRules configures fantasy land entry, size and re-qualification.
type FantasyRules struct {
	Mode        FantasyMode
	Entry       Threshold
	NormalCards int
	// Progressive is ordered from easiest to hardest threshold.
	Progressive []FantasyStep
	RepeatCards int
	StayTop     Threshold
	StayMiddle  Threshold
	StayBottom  Threshold
}

// DefaultFantasy is the common house rule: QQ or better on top enters with 14
// cards; trips on top, or quads or better behind, stays.
func DefaultFantasy() FantasyRules {
	return FantasyRules{
		Mode:        FantasyNormal,
		Entry:       Threshold{Category: poker.Pair, Rank: poker.Queen},
		NormalCards: 14,
		Progressive: []FantasyStep{
			{Threshold: Threshold{Category: poker.Pair, Rank: poker.Queen}, Cards: 14},
			{Threshold: Threshold{Category: poker.Pair, Rank: poker.King}, Cards: 15},
			{Threshold: Threshold{Category: poker.Pair, Rank: poker.Ace}, Cards: 16},
			{Threshold: AtLeast(poker.ThreeOfAKind), Cards: 17},
		},
		RepeatCards: 14,
		StayTop:     AtLeast(poker.ThreeOfAKind),
		StayMiddle:  AtLeast(poker.FourOfAKind),
		StayBottom:  AtLeast(poker.FourOfAKind),
	}
}

// EntryCards returns the fantasy hand size earned by a top row, or false when
// the row does not qualify.
func (f FantasyRules) EntryCards(top poker.HandRank[poker.AtTop]) (int, bool) {
	if f.Mode == FantasyOff || !Meets(top, f.Entry) {
		return 0, false
	}
	if f.Mode != FantasyProgressive {
		return f.NormalCards, true
	}
	cards := 0
	for _, step := range f.Progressive {
		if Meets(top, step.Threshold) {
			cards = step.Cards
		}
	}
	if cards == 0 {
		return f.NormalCards, true
	}
	return cards, true
}

// Stays reports whether a board played in fantasy land re-qualifies.
func (f FantasyRules) Stays(top poker.HandRank[poker.AtTop], middle poker.HandRank[poker.AtMiddle], bottom poker.HandRank[poker.AtBottom]) bool {
	if f.Mode == FantasyOff {
		return false
	}
	return Meets(top, f.StayTop) || Meets(middle, f.StayMiddle) || Meets(bottom, f.StayBottom)
}

// MaxCards is the largest fantasy hand these rules can deal.
func (f FantasyRules) MaxCards() int {
	if f.Mode == FantasyOff {
		return 0
	}
	m := max(f.NormalCards, f.RepeatCards)
	if f.Mode == FantasyProgressive {
		for _, s := range f.Progressive {
			m = max(m, s.Cards)
		}
	}
	return m
}

func (f *FantasyRules) validate(players int) error {
	switch f.Mode {
	case FantasyOff:
		return nil
	case FantasyNormal, FantasyProgressive:
	default:
		return fmt.Errorf("fantasy: unknown mode %q", f.Mode)
	}
	if f.Entry.Category > poker.ThreeOfAKind {
		return fmt.Errorf("fantasy: entry %s is not a three-card hand", f.Entry)
	}
	if f.StayTop.Category > poker.ThreeOfAKind {
		return fmt.Errorf("fantasy: stay_top %s is not a three-card hand", f.StayTop)
	}
	if !slices.IsSortedFunc(f.Progressive, func(a, b FantasyStep) int { return a.Threshold.compare(b.Threshold) }) {
		return fmt.Errorf("fantasy: progressive steps must be ordered from easiest to hardest threshold")
	}
	sizes := []int{f.NormalCards, f.RepeatCards}
	if f.Mode == FantasyProgressive {
		if len(f.Progressive) == 0 {
			return fmt.Errorf("fantasy: progressive mode needs at least one step")
		}
		for i, s := range f.Progressive {
			if s.Threshold.Category > poker.ThreeOfAKind {
				return fmt.Errorf("fantasy: progressive step %s is not a three-card hand", s.Threshold)
			}
			if i > 0 && s.Cards < f.Progressive[i-1].Cards {
				return fmt.Errorf("fantasy: progressive step %s deals fewer cards than %s", s.Threshold, f.Progressive[i-1].Threshold)
			}
			sizes = append(sizes, s.Cards)
		}
	}
	for _, n := range sizes {
		if n < 13 {
			return fmt.Errorf("fantasy: hand of %d cards cannot fill a board", n)
		}
	}
	if m := f.MaxCards(); players*m > 52 {
		return fmt.Errorf("fantasy: %d players with %d cards each exceeds the deck", players, m)
	}
	return nil
}
