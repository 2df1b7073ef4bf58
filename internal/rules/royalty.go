package rules

import (
	"fmt"

	"github.com/lox/openface/poker"
)

// RoyaltyTable maps a completed row hand to bonus points. Rows are priced
// independently; a hand type absent from a row's table pays nothing.
type RoyaltyTable struct {
	TopPair     map[poker.Rank]int
	TopTrips    map[poker.Rank]int
	MiddleHands map[poker.Category]int
	BottomHands map[poker.Category]int
	// Royal flushes are priced separately from other straight flushes.
	MiddleRoyal int
	BottomRoyal int
}

// DefaultRoyalties is the standard OFC royalty schedule.
func DefaultRoyalties() RoyaltyTable {
	t := RoyaltyTable{
		TopPair:  make(map[poker.Rank]int),
		TopTrips: make(map[poker.Rank]int),
		MiddleHands: map[poker.Category]int{
			poker.ThreeOfAKind:  2,
			poker.Straight:      4,
			poker.Flush:         8,
			poker.FullHouse:     12,
			poker.FourOfAKind:   20,
			poker.StraightFlush: 30,
		},
		BottomHands: map[poker.Category]int{
			poker.Straight:      2,
			poker.Flush:         4,
			poker.FullHouse:     6,
			poker.FourOfAKind:   10,
			poker.StraightFlush: 15,
		},
		MiddleRoyal: 50,
		BottomRoyal: 25,
	}
	// 66 pays 1 up to AA at 9; 222 pays 10 up to AAA at 22.
	for r := poker.Six; r <= poker.Ace; r++ {
		t.TopPair[r] = int(r - poker.Five)
	}
	for r := poker.Two; r <= poker.Ace; r++ {
		t.TopTrips[r] = int(r-poker.Two) + 10
	}
	return t
}

// Top prices a top row hand.
func (t RoyaltyTable) Top(h poker.HandRank[poker.AtTop]) int {
	return Royalty(t, h)
}

// Middle prices a middle row hand.
func (t RoyaltyTable) Middle(h poker.HandRank[poker.AtMiddle]) int {
	return Royalty(t, h)
}

// Bottom prices a bottom row hand.
func (t RoyaltyTable) Bottom(h poker.HandRank[poker.AtBottom]) int {
	return Royalty(t, h)
}

// Royalty prices a hand in whichever row it was evaluated for.
func Royalty[P poker.Position](t RoyaltyTable, h poker.HandRank[P]) int {
	if h.IsZero() {
		return 0
	}
	switch h.Row() {
	case poker.Top:
		switch h.Category() {
		case poker.Pair:
			return t.TopPair[h.Primary()]
		case poker.ThreeOfAKind:
			return t.TopTrips[h.Primary()]
		}
		return 0
	case poker.Middle:
		if h.IsRoyal() {
			return t.MiddleRoyal
		}
		return t.MiddleHands[h.Category()]
	default:
		if h.IsRoyal() {
			return t.BottomRoyal
		}
		return t.BottomHands[h.Category()]
	}
}

func (t RoyaltyTable) validate() error {
	for r, v := range t.TopPair {
		if !r.Valid() || v < 0 {
			return fmt.Errorf("royalties: top pair %s = %d", r, v)
		}
	}
	for r, v := range t.TopTrips {
		if !r.Valid() || v < 0 {
			return fmt.Errorf("royalties: top trips %s = %d", r, v)
		}
	}
	for c, v := range t.MiddleHands {
		if c > poker.StraightFlush || v < 0 {
			return fmt.Errorf("royalties: middle %s = %d", c, v)
		}
	}
	for c, v := range t.BottomHands {
		if c > poker.StraightFlush || v < 0 {
			return fmt.Errorf("royalties: bottom %s = %d", c, v)
		}
	}
	if t.MiddleRoyal < 0 || t.BottomRoyal < 0 {
		return fmt.Errorf("royalties: royal flush bonus must not be negative")
	}
	return nil
}
