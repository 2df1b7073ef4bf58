// Package statistics accumulates per-seat results over many simulated rounds.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is one seat's outcome in one scored round.
type RoundResult struct {
	Points    int   // Net points won or lost
	Seed      int64 // Session seed (for replay)
	Position  int   // Seats after the first to act, 0 = acted first
	Fouled    bool
	Scoops    int // Opponents scooped
	Royalties int
	Fantasy   bool // Played the round in fantasy land
}

// PositionStats tracks results for one acting position.
type PositionStats struct {
	Rounds int     `json:"rounds"`
	Sum    float64 `json:"sum"`
	Sum2   float64 `json:"sum2"`
}

// Statistics tracks a seat's results with running sums for mean and variance.
type Statistics struct {
	Rounds int       `json:"rounds"`
	Sum    float64   `json:"sum"`
	Sum2   float64   `json:"sum2"` // Sum of squares for variance calculation
	Values []float64 `json:"-"`    // Every result, for median and percentiles

	Fouls     int `json:"fouls"`
	Scoops    int `json:"scoops"`
	Royalties int `json:"royalties"`

	FantasyRounds int     `json:"fantasy_rounds"`
	FantasyPoints float64 `json:"fantasy_points"` // Points won in fantasy rounds

	MaxWin  int `json:"max_win"`
	MaxLoss int `json:"max_loss"` // Most negative result, as a negative number

	Positions []PositionStats `json:"positions"`
}

// Mean returns the average points per round.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval of the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// FoulRate returns the share of rounds the seat fouled.
func (s *Statistics) FoulRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Fouls) / float64(s.Rounds)
}

// Add records one round.
func (s *Statistics) Add(r RoundResult) {
	v := float64(r.Points)
	s.Rounds++
	s.Sum += v
	s.Sum2 += v * v
	s.Values = append(s.Values, v)

	if r.Fouled {
		s.Fouls++
	}
	s.Scoops += r.Scoops
	s.Royalties += r.Royalties
	if r.Fantasy {
		s.FantasyRounds++
		s.FantasyPoints += v
	}
	s.MaxWin = max(s.MaxWin, r.Points)
	s.MaxLoss = min(s.MaxLoss, r.Points)

	if r.Position >= 0 {
		for len(s.Positions) <= r.Position {
			s.Positions = append(s.Positions, PositionStats{})
		}
		p := &s.Positions[r.Position]
		p.Rounds++
		p.Sum += v
		p.Sum2 += v * v
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Fouls += other.Fouls
	s.Scoops += other.Scoops
	s.Royalties += other.Royalties
	s.FantasyRounds += other.FantasyRounds
	s.FantasyPoints += other.FantasyPoints
	s.MaxWin = max(s.MaxWin, other.MaxWin)
	s.MaxLoss = min(s.MaxLoss, other.MaxLoss)
	for len(s.Positions) < len(other.Positions) {
		s.Positions = append(s.Positions, PositionStats{})
	}
	for i, p := range other.Positions {
		s.Positions[i].Rounds += p.Rounds
		s.Positions[i].Sum += p.Sum
		s.Positions[i].Sum2 += p.Sum2
	}
}

func (s *Statistics) sorted() []float64 {
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	sort.Float64s(out)
	return out
}

func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the p-th percentile (0..1) by linear interpolation.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean points for one acting position.
func (s *Statistics) PositionMean(pos int) float64 {
	if pos < 0 || pos >= len(s.Positions) || s.Positions[pos].Rounds == 0 {
		return 0
	}
	return s.Positions[pos].Sum / float64(s.Positions[pos].Rounds)
}

// Validate checks the internal ledger is consistent.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Fouls > s.Rounds {
		return fmt.Errorf("fouls (%d) exceed rounds (%d)", s.Fouls, s.Rounds)
	}
	if s.FantasyRounds > s.Rounds {
		return fmt.Errorf("fantasy rounds (%d) exceed rounds (%d)", s.FantasyRounds, s.Rounds)
	}
	positioned := 0
	for _, p := range s.Positions {
		positioned += p.Rounds
	}
	if positioned != s.Rounds {
		return fmt.Errorf("position rounds total (%d) does not match rounds (%d)", positioned, s.Rounds)
	}
	return nil
}
