package bot

import (
	"sort"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/poker"
)

// Situation is one candidate placement: Card onto Row of Board.
type Situation struct {
	Card  poker.Card
	Row   poker.Row
	Board game.BoardView
}

func (s Situation) row(r poker.Row) []poker.Card { return s.Board.Row(r) }

func (s Situation) target() []poker.Card { return s.row(s.Row) }

// free is the space left in the target row before placing.
func (s Situation) free() int { return s.Row.Size() - len(s.target()) }

// matches counts cards of Card's rank already in the target row.
func (s Situation) matches() int {
	return countRank(s.target(), s.Card.Rank)
}

// suited reports whether every card in a non-empty target row shares Card's suit.
func (s Situation) suited() bool {
	cards := s.target()
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if c.Suit != s.Card.Suit {
			return false
		}
	}
	return true
}

// connected reports whether Card and the target row fit inside a five-rank
// window with no pairs.
func (s Situation) connected() bool {
	cards := s.target()
	if len(cards) == 0 || s.matches() > 0 {
		return false
	}
	lo, hi := s.Card.Rank, s.Card.Rank
	seen := map[poker.Rank]bool{s.Card.Rank: true}
	for _, c := range cards {
		if seen[c.Rank] {
			return false
		}
		seen[c.Rank] = true
		lo, hi = min(lo, c.Rank), max(hi, c.Rank)
	}
	return hi-lo <= 4
}

// group is the largest set of equal ranks in cards, ties to the higher rank.
type group struct {
	count int
	rank  poker.Rank
}

func bestGroup(cards []poker.Card) group {
	var counts [15]int
	for _, c := range cards {
		counts[c.Rank]++
	}
	var g group
	for r := poker.Ace; r >= poker.Two; r-- {
		if counts[r] > g.count {
			g = group{count: counts[r], rank: r}
		}
	}
	return g
}

func (g group) beats(o group) bool {
	if g.count != o.count {
		return g.count > o.count
	}
	return g.count > 1 && g.rank > o.rank
}

func countRank(cards []poker.Card, r poker.Rank) int {
	n := 0
	for _, c := range cards {
		if c.Rank == r {
			n++
		}
	}
	return n
}

// after returns the group the target row would hold once Card is placed.
func (s Situation) after() group {
	return bestGroup(append(append([]poker.Card(nil), s.target()...), s.Card))
}

// coveredBelow reports whether the row beneath the target already holds a
// made hand at least as strong as the target row would.
func (s Situation) coveredBelow() bool {
	if s.Row == poker.Bottom {
		return true
	}
	below := bestGroup(s.row(s.Row + 1))
	return !s.after().beats(below)
}

// PlacementRule scores one aspect of a candidate placement.
type PlacementRule struct {
	Name      string
	Condition func(Situation) bool
	Score     int
	Priority  int
}

// SituationRecognizer scores placements by summing the rules that apply.
type SituationRecognizer struct {
	rules []PlacementRule
}

// NewSituationRecognizer creates a recognizer with the standard placement rules.
func NewSituationRecognizer() *SituationRecognizer {
	rs := placementRules()
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Priority > rs[j].Priority })
	return &SituationRecognizer{rules: rs}
}

// Evaluate returns the placement's score and the names of the rules applied.
func (sr *SituationRecognizer) Evaluate(s Situation) (int, []string) {
	score := 0
	var applied []string
	for _, rule := range sr.rules {
		if rule.Condition(s) {
			score += rule.Score
			applied = append(applied, rule.Name)
		}
	}
	return score, applied
}

func placementRules() []PlacementRule {
	return []PlacementRule{
		{
			Name: "trips or better behind",
			Condition: func(s Situation) bool {
				return s.Row != poker.Top && s.matches() >= 2
			},
			Score:    90,
			Priority: 100,
		},
		{
			Name: "pair on bottom",
			Condition: func(s Situation) bool {
				return s.Row == poker.Bottom && s.matches() == 1
			},
			Score:    45,
			Priority: 90,
		},
		{
			Name: "pair in middle",
			Condition: func(s Situation) bool {
				return s.Row == poker.Middle && s.matches() == 1 && s.coveredBelow()
			},
			Score:    35,
			Priority: 90,
		},
		{
			Name: "royalty pair on top",
			Condition: func(s Situation) bool {
				return s.Row == poker.Top && s.matches() >= 1 && s.Card.Rank >= poker.Six && s.coveredBelow()
			},
			Score:    40,
			Priority: 85,
		},
		{
			Name: "row would outrank the row beneath",
			Condition: func(s Situation) bool {
				return s.Row != poker.Bottom && s.matches() >= 1 && !s.coveredBelow()
			},
			Score:    -80,
			Priority: 80,
		},
		{
			Name: "flush draw on bottom",
			Condition: func(s Situation) bool {
				return s.Row == poker.Bottom && s.suited()
			},
			Score:    14,
			Priority: 60,
		},
		{
			Name: "flush draw in middle",
			Condition: func(s Situation) bool {
				return s.Row == poker.Middle && s.suited()
			},
			Score:    9,
			Priority: 60,
		},
		{
			Name: "straight draw",
			Condition: func(s Situation) bool {
				return s.Row != poker.Top && s.connected()
			},
			Score:    6,
			Priority: 50,
		},
		{
			Name: "high card anchors the bottom",
			Condition: func(s Situation) bool {
				return s.Row == poker.Bottom && s.matches() == 0 && s.Card.Rank >= poker.Queen
			},
			Score:    10,
			Priority: 40,
		},
		{
			Name: "low kicker on top",
			Condition: func(s Situation) bool {
				return s.Row == poker.Top && s.matches() == 0 && s.Card.Rank <= poker.Nine
			},
			Score:    8,
			Priority: 40,
		},
		{
			Name: "unpaired high card on top",
			Condition: func(s Situation) bool {
				return s.Row == poker.Top && s.matches() == 0 && s.Card.Rank >= poker.Queen
			},
			Score:    -12,
			Priority: 40,
		},
		{
			Name: "last slot wasted",
			Condition: func(s Situation) bool {
				return s.free() == 1 && s.matches() == 0 && !s.suited()
			},
			Score:    -6,
			Priority: 20,
		},
		{
			Name: "room to improve",
			Condition: func(s Situation) bool {
				return s.free() >= 3
			},
			Score:    3,
			Priority: 10,
		},
	}
}
