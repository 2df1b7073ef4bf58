package bot

import (
	"context"
	"fmt"
	"slices"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// bottomCandidates bounds the search to the strongest bottom rows.
const bottomCandidates = 24

// stayBonus values re-qualifying for fantasy land above its royalties.
const stayBonus = 15

type scoredHand struct {
	cards []poker.Card
	score int16
}

// SolveFantasy arranges a fantasy hand into a board that does not foul,
// maximising royalties plus a bonus for staying in fantasy land. Candidate
// rows are ranked with the fast paulhankin scorer and only the finalists are
// checked with the rules engine. When no legal arrangement is found the hand
// is split by rank.
func SolveFantasy(ctx context.Context, hand []poker.Card, r *rules.Rules) (game.Placement, int, error) {
	if len(hand) < rules.BoardSize {
		return game.Placement{}, 0, fmt.Errorf("fantasy hand of %d cards: %w", len(hand), game.ErrInvalidPlacement)
	}
	ladder := r.Ladder()

	bottoms, err := rankedHands(hand, 5)
	if err != nil {
		return game.Placement{}, 0, err
	}
	if len(bottoms) > bottomCandidates {
		bottoms = bottoms[:bottomCandidates]
	}

	var (
		best      game.Placement
		bestValue = -1
	)
	for _, bottom := range bottoms {
		if err := ctx.Err(); err != nil {
			return game.Placement{}, 0, err
		}
		rest := without(hand, bottom.cards)
		middles, err := rankedHands(rest, 5)
		if err != nil {
			return game.Placement{}, 0, err
		}
		for _, middle := range middles {
			if middle.score > bottom.score {
				continue
			}
			tops, err := rankedHands(without(rest, middle.cards), 3)
			if err != nil {
				return game.Placement{}, 0, err
			}
			placed := false
			for _, top := range tops {
				p := game.Placement{Top: top.cards, Middle: middle.cards, Bottom: bottom.cards}
				value, ok := placementValue(p, r, ladder)
				if !ok {
					continue
				}
				placed = true
				if value > bestValue {
					best, bestValue = p, value
				}
				break
			}
			if placed {
				break
			}
		}
	}
	if bestValue < 0 {
		return game.SimplePlacement(hand), 0, nil
	}
	return best, bestValue, nil
}

// placementValue returns the royalties a board earns, plus the stay bonus,
// or false when it fouls.
func placementValue(p game.Placement, r *rules.Rules, ladder poker.Ladder) (int, bool) {
	b, err := game.NewBoardFrom(p.Top, p.Middle, p.Bottom)
	if err != nil {
		return 0, false
	}
	fouled, err := b.Fouled(ladder)
	if err != nil || fouled {
		return 0, false
	}
	roy, err := b.Royalties(r.Royalties)
	if err != nil {
		return 0, false
	}
	value := roy.Total()
	h, err := b.Evaluate()
	if err == nil && r.Fantasy.Stays(h.Top, h.Middle, h.Bottom) {
		value += stayBonus
	}
	return value, true
}

// rankedHands scores every k-card subset of cards, strongest first.
func rankedHands(cards []poker.Card, k int) ([]scoredHand, error) {
	var (
		out []scoredHand
		err error
	)
	combinations(len(cards), k, func(idx []int) bool {
		hand := make([]poker.Card, k)
		for i, j := range idx {
			hand[i] = cards[j]
		}
		var s int16
		if s, err = poker.Score(hand); err != nil {
			return false
		}
		out = append(out, scoredHand{cards: hand, score: s})
		return true
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b scoredHand) int { return int(b.score) - int(a.score) })
	return out, nil
}

// combinations calls fn with each k-subset of [0,n) in lexicographic order
// until fn returns false.
func combinations(n, k int, fn func([]int) bool) {
	if k > n || k <= 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func without(cards, remove []poker.Card) []poker.Card {
	out := make([]poker.Card, 0, len(cards))
	for _, c := range cards {
		if !slices.Contains(remove, c) {
			out = append(out, c)
		}
	}
	return out
}
