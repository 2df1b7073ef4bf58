package poker

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	five := []struct {
		cards string
		want  Category
		label string
	}{
		{"As Kd 9c 7h 2s", HighCard, "High Card"},
		{"As Ad 9c 7h 2s", Pair, "Pair"},
		{"As Ad 9c 9h 2s", TwoPair, "Two Pair"},
		{"9s 9d 9c Ah 2s", ThreeOfAKind, "Three of a Kind"},
		{"5s 6d 7c 8h 9s", Straight, "Straight"},
		{"As 2d 3c 4h 5s", Straight, "Straight"},
		{"2h 7h 9h Jh Kh", Flush, "Flush"},
		{"9s 9d 9c 2h 2s", FullHouse, "Full House"},
		{"As Ad Ac Ah Ks", FourOfAKind, "Four of a Kind"},
		{"5h 6h 7h 8h 9h", StraightFlush, "Straight Flush"},
		{"Th Jh Qh Kh Ah", StraightFlush, "Royal Flush"},
	}
	for _, tc := range five {
		h := MustEvaluate[AtMiddle](MustParseCards(tc.cards))
		if h.Category() != tc.want {
			t.Errorf("%s: category %s, want %s", tc.cards, h.Category(), tc.want)
		}
		if h.Label() != tc.label {
			t.Errorf("%s: label %s, want %s", tc.cards, h.Label(), tc.label)
		}
	}

	three := []struct {
		cards string
		want  Category
	}{
		{"As Kd 9c", HighCard},
		{"Qs Qd 4c", Pair},
		{"Ks Kd Kc", ThreeOfAKind},
		// Three suited connectors are neither a flush nor a straight on top.
		{"Qh Kh Ah", HighCard},
	}
	for _, tc := range three {
		h := MustEvaluate[AtTop](MustParseCards(tc.cards))
		if h.Category() != tc.want {
			t.Errorf("%s: category %s, want %s", tc.cards, h.Category(), tc.want)
		}
	}
}

func TestEvaluateTieBreaks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		stronger, weaker string
	}{
		{"As Ad 9c 7h 3s", "As Ad 9c 7h 2s"},
		{"Ks Kd Qc Qh 2s", "Ks Kd Jc Jh As"},
		{"6s 7d 8c 9h Ts", "As 2d 3c 4h 5s"},
		{"2h 7h 9h Jh Ah", "2d 7d 9d Jd Kd"},
		{"3s 3d 3c 2h 2s", "2s 2d 2c Ah As"},
		{"Ts Jd Qc Kh As", "9s Td Jc Qh Ks"},
	}
	for _, tc := range tests {
		a := MustEvaluate[AtBottom](MustParseCards(tc.stronger))
		b := MustEvaluate[AtBottom](MustParseCards(tc.weaker))
		if a.Compare(b) != 1 || b.Compare(a) != -1 {
			t.Errorf("expected %s > %s", tc.stronger, tc.weaker)
		}
	}

	a := MustEvaluate[AtBottom](MustParseCards("As Kd 9c 7h 2s"))
	b := MustEvaluate[AtBottom](MustParseCards("Ah Kc 9d 7s 2d"))
	if a.Compare(b) != 0 {
		t.Error("suits must not break ties")
	}

	top := MustEvaluate[AtTop](MustParseCards("Qs Qd 5c"))
	top2 := MustEvaluate[AtTop](MustParseCards("Qh Qc 4c"))
	if top.Compare(top2) != 1 {
		t.Error("expected QQ5 > QQ4")
	}
}

func TestEvaluateRanks(t *testing.T) {
	t.Parallel()
	h := MustEvaluate[AtMiddle](MustParseCards("9s 9d 9c 2h 2s"))
	if h.Primary() != Nine {
		t.Errorf("primary %s, want 9", h.Primary())
	}
	if !slices.Equal(h.Ranks(), []Rank{Nine, Two}) {
		t.Errorf("ranks %v", h.Ranks())
	}
	wheel := MustEvaluate[AtMiddle](MustParseCards("As 2d 3c 4h 5s"))
	if wheel.Primary() != Five {
		t.Errorf("wheel should be five high, got %s", wheel.Primary())
	}
	if wheel.IsRoyal() {
		t.Error("wheel is not royal")
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := Evaluate[AtTop](MustParseCards("As Kd 9c 7h 2s")); !errors.Is(err, ErrInvalidHandSize) {
		t.Errorf("expected ErrInvalidHandSize, got %v", err)
	}
	if _, err := Evaluate[AtMiddle](MustParseCards("As Kd")); !errors.Is(err, ErrInvalidHandSize) {
		t.Errorf("expected ErrInvalidHandSize, got %v", err)
	}
	if _, err := Evaluate[AtBottom](MustParseCards("As As 9c 7h 2s")); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}
	if _, err := Evaluate[AtTop]([]Card{{}, {}, {}}); err == nil {
		t.Error("expected error for zero cards")
	}
}

// Sorting random hands by HandRank and by the paulhankin evaluator must agree
// on every strict pair.
func TestEvaluateAgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 7))
	const n = 1000

	type sample struct {
		rank  HandRank[AtBottom]
		score int16
	}
	samples := make([]sample, n)
	for i := range samples {
		d := NewDeck(rng)
		cards, _ := d.DrawN(5)
		s, err := Score(cards)
		if err != nil {
			t.Fatal(err)
		}
		samples[i] = sample{rank: MustEvaluate[AtBottom](cards), score: s}
	}

	// The reference score may run in either direction; learn it from the first strict pair.
	dir := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := samples[i].rank.Compare(samples[j].rank)
			var s int
			switch {
			case samples[i].score > samples[j].score:
				s = 1
			case samples[i].score < samples[j].score:
				s = -1
			}
			if c == 0 || s == 0 {
				if c != s {
					t.Fatalf("tie mismatch: %v vs %v", samples[i].rank, samples[j].rank)
				}
				continue
			}
			if dir == 0 {
				dir = c * s
			}
			if c*s != dir {
				t.Fatalf("order mismatch: %v vs %v", samples[i].rank, samples[j].rank)
			}
		}
	}
}

func TestSortIsTotalOrder(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 99))
	hands := make([]HandRank[AtTop], 500)
	for i := range hands {
		cards, _ := NewDeck(rng).DrawN(3)
		hands[i] = MustEvaluate[AtTop](cards)
	}
	slices.SortFunc(hands, func(a, b HandRank[AtTop]) int { return a.Compare(b) })
	for i := 1; i < len(hands); i++ {
		if hands[i-1].Compare(hands[i]) > 0 {
			t.Fatalf("sort out of order at %d", i)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards, want string
	}{
		{"9s 9d 9c 2h 2s", "full house (999-22)"},
		{"Qs Qh 4c", "pair (QQ-4)"},
		{"As Ah Ad Ac Ks", "four of a kind (AAAA-K)"},
	}
	for _, tt := range tests {
		desc, err := Describe(MustParseCards(tt.cards))
		if err != nil {
			t.Fatalf("%s: %v", tt.cards, err)
		}
		if desc != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.cards, desc, tt.want)
		}
	}
	if _, err := Describe(MustParseCards("9s 9d")); !errors.Is(err, ErrInvalidHandSize) {
		t.Errorf("expected ErrInvalidHandSize, got %v", err)
	}
}

func TestParseRowAndCategory(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Row{"top": Top, "front": Top, "Middle": Middle, "back": Bottom} {
		got, err := ParseRow(in)
		if err != nil || got != want {
			t.Errorf("ParseRow(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseRow("side"); err == nil {
		t.Error("expected error for unknown row")
	}
	for c := HighCard; c <= StraightFlush; c++ {
		got, err := ParseCategory(c.Key())
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.Key(), got, err)
		}
	}
	if got, _ := ParseCategory("quads"); got != FourOfAKind {
		t.Errorf("quads parsed as %v", got)
	}
}

func BenchmarkEvaluate5(b *testing.B) {
	cards := MustParseCards("9s 9d 9c 2h 2s")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate[AtBottom](cards)
	}
}
