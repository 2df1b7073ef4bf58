package game

import (
	"fmt"

	"github.com/lox/openface/internal/rules"
)

// LineOutcome is one row's result from the first board's point of view.
type LineOutcome int8

const (
	Loss LineOutcome = -1
	Push LineOutcome = 0
	Win  LineOutcome = 1
)

func (o LineOutcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "push"
	}
}

// LineResult holds the three row outcomes, indexed by poker.Row.
type LineResult [3]LineOutcome

// Points sums the rows at one point each.
func (l LineResult) Points() int {
	return int(l[0]) + int(l[1]) + int(l[2])
}

// Scoop returns 1 when every row won, -1 when every row lost, else 0.
func (l LineResult) Scoop() int {
	switch {
	case l[0] == Win && l[1] == Win && l[2] == Win:
		return 1
	case l[0] == Loss && l[1] == Loss && l[2] == Loss:
		return -1
	}
	return 0
}

// Invert returns the result from the other board's point of view.
func (l LineResult) Invert() LineResult {
	return LineResult{-l[0], -l[1], -l[2]}
}

func outcome(c int) LineOutcome {
	switch {
	case c > 0:
		return Win
	case c < 0:
		return Loss
	}
	return Push
}

// CompareBoards compares two complete boards row by row, ignoring fouls.
func CompareBoards(a, b *Board) (LineResult, error) {
	ha, err := a.Evaluate()
	if err != nil {
		return LineResult{}, err
	}
	hb, err := b.Evaluate()
	if err != nil {
		return LineResult{}, err
	}
	return LineResult{
		outcome(ha.Top.Compare(hb.Top)),
		outcome(ha.Middle.Compare(hb.Middle)),
		outcome(ha.Bottom.Compare(hb.Bottom)),
	}, nil
}

// SeatResult is one seat's share of a scored round.
type SeatResult struct {
	Seat      int          `json:"seat"`
	Fouled    bool         `json:"fouled"`
	Royalties RowRoyalties `json:"royalties"`
	Total     int          `json:"total"`
}

// PairResult settles one pair of seats from A's point of view. B receives the
// negation.
type PairResult struct {
	A       int        `json:"a"`
	B       int        `json:"b"`
	Lines   LineResult `json:"lines"`
	Scoop   int        `json:"scoop"`
	Line    int        `json:"line_points"`
	Bonus   int        `json:"scoop_points"`
	Royalty int        `json:"royalty_points"`
	Points  int        `json:"points"`
}

// ScoreSheet is the outcome of a round.
type ScoreSheet struct {
	Seats []SeatResult `json:"seats"`
	Pairs []PairResult `json:"pairs"`
}

// Totals returns the net points of each seat.
func (s *ScoreSheet) Totals() []int {
	out := make([]int, len(s.Seats))
	for i, r := range s.Seats {
		out[i] = r.Total
	}
	return out
}

// Pair returns the result between seats a and b from a's point of view.
func (s *ScoreSheet) Pair(a, b int) (PairResult, bool) {
	for _, p := range s.Pairs {
		switch {
		case p.A == a && p.B == b:
			return p, true
		case p.A == b && p.B == a:
			return PairResult{
				A: a, B: b, Lines: p.Lines.Invert(), Scoop: -p.Scoop,
				Line: -p.Line, Bonus: -p.Bonus, Royalty: -p.Royalty, Points: -p.Points,
			}, true
		}
	}
	return PairResult{}, false
}

// ScoreRound settles every pair of complete boards. Each pair exchanges one
// point per row, the scoop bonus when one side wins all three rows, and the
// difference in royalties. A fouled board loses every row and the scoop and
// earns no royalties unless FouledRoyalties is set. Two fouled boards exchange
// nothing. Totals always sum to zero.
func ScoreRound(boards []*Board, r *rules.Rules) (*ScoreSheet, error) {
	ladder := r.Ladder()
	sheet := &ScoreSheet{Seats: make([]SeatResult, len(boards))}
	for i, b := range boards {
		fouled, err := IsFouled(b, ladder)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		var roy RowRoyalties
		if !fouled || r.FouledRoyalties {
			if roy, err = b.Royalties(r.Royalties); err != nil {
				return nil, fmt.Errorf("seat %d: %w", i, err)
			}
		}
		sheet.Seats[i] = SeatResult{Seat: i, Fouled: fouled, Royalties: roy}
	}

	for a := 0; a < len(boards); a++ {
		for b := a + 1; b < len(boards); b++ {
			p, err := scorePair(sheet.Seats[a], sheet.Seats[b], boards[a], boards[b], r.ScoopBonus)
			if err != nil {
				return nil, err
			}
			sheet.Pairs = append(sheet.Pairs, p)
			sheet.Seats[a].Total += p.Points
			sheet.Seats[b].Total -= p.Points
		}
	}
	return sheet, nil
}

func scorePair(sa, sb SeatResult, a, b *Board, scoopBonus int) (PairResult, error) {
	p := PairResult{A: sa.Seat, B: sb.Seat}
	switch {
	case sa.Fouled && sb.Fouled:
		return p, nil
	case sa.Fouled:
		p.Lines = LineResult{Loss, Loss, Loss}
	case sb.Fouled:
		p.Lines = LineResult{Win, Win, Win}
	default:
		lines, err := CompareBoards(a, b)
		if err != nil {
			return PairResult{}, err
		}
		p.Lines = lines
	}
	p.Scoop = p.Lines.Scoop()
	p.Line = p.Lines.Points()
	p.Bonus = p.Scoop * scoopBonus
	p.Royalty = sa.Royalties.Total() - sb.Royalties.Total()
	p.Points = p.Line + p.Bonus + p.Royalty
	return p, nil
}
