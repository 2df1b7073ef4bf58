package poker

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
)

func TestCardString(t *testing.T) {
	t.Parallel()
	if got := NewCard(Ace, Spades).String(); got != "As" {
		t.Errorf("expected As, got %s", got)
	}
	if got := NewCard(Ten, Diamonds).String(); got != "Td" {
		t.Errorf("expected Td, got %s", got)
	}
	if got := NewCard(Two, Clubs).Pretty(); got != "2♣" {
		t.Errorf("expected 2♣, got %s", got)
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"2h", NewCard(Two, Hearts), false},
		{"kd", NewCard(King, Diamonds), false},
		{"Tc", NewCard(Ten, Clubs), false},
		{"10c", NewCard(Ten, Clubs), false},
		{"Q♠", NewCard(Queen, Spades), false},
		{"Xs", Card{}, true},
		{"Ax", Card{}, true},
		{"", Card{}, true},
		{"AsK", Card{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCard(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestFullDeckDistinct(t *testing.T) {
	t.Parallel()
	seen := make(map[Card]bool)
	for _, c := range FullDeck() {
		if !c.Valid() {
			t.Fatalf("invalid card %v", c)
		}
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
		parsed, err := ParseCard(c.String())
		if err != nil || parsed != c {
			t.Errorf("round trip of %s gave %v, %v", c, parsed, err)
		}
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 cards, got %d", len(seen))
	}
}

func TestCardJSON(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("As Kd 7c")
	data, err := json.Marshal(cards)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["As","Kd","7c"]` {
		t.Errorf("unexpected encoding %s", data)
	}
	var back []Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if FormatCards(back) != "As Kd 7c" {
		t.Errorf("unexpected decode %v", back)
	}
}

func TestDeckDrawsEveryCardOnce(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(1, 2)))
	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c, err := d.Draw()
		if err != nil {
			t.Fatal(err)
		}
		if seen[c] {
			t.Fatalf("card %s drawn twice", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("drew %d cards, want 52", len(seen))
	}
	if _, err := d.Draw(); err != ErrDeckExhausted {
		t.Errorf("expected ErrDeckExhausted, got %v", err)
	}
}

func TestDeckDrawNIsAtomic(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(3, 4)))
	if _, err := d.DrawN(50); err != nil {
		t.Fatal(err)
	}
	if _, err := d.DrawN(3); err == nil {
		t.Fatal("expected exhaustion error")
	}
	if d.Remaining() != 2 {
		t.Errorf("failed draw consumed cards: %d remaining", d.Remaining())
	}
}

func TestDeckSameSeedSameOrder(t *testing.T) {
	t.Parallel()
	a := NewDeck(rand.New(rand.NewPCG(9, 9)))
	b := NewDeck(rand.New(rand.NewPCG(9, 9)))
	ca, _ := a.DrawN(52)
	cb, _ := b.DrawN(52)
	if FormatCards(ca) != FormatCards(cb) {
		t.Error("same seed produced different orders")
	}
}

func TestDeckReturn(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(5, 6)))
	first, _ := d.DrawN(5)
	last, _ := d.DrawN(2)

	if err := d.Return(first[0]); err == nil {
		t.Error("expected error returning a card that was not drawn last")
	}
	if err := d.Return(last...); err != nil {
		t.Fatal(err)
	}
	if d.Remaining() != 47 {
		t.Errorf("expected 47 remaining, got %d", d.Remaining())
	}
	again, _ := d.DrawN(2)
	if FormatCards(again) != FormatCards(last) {
		t.Errorf("returned cards not redrawn in order: %v vs %v", again, last)
	}
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()
	top := MustParseCards("As Ks Qs")
	d, err := NewStackedDeck(rand.New(rand.NewPCG(1, 1)), top)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := d.DrawN(3)
	if FormatCards(got) != "As Ks Qs" {
		t.Errorf("unexpected stacked draw %v", got)
	}
	seen := map[Card]bool{}
	for _, c := range got {
		seen[c] = true
	}
	for d.Remaining() > 0 {
		c, _ := d.Draw()
		if seen[c] {
			t.Fatalf("card %s dealt twice", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 distinct cards, got %d", len(seen))
	}

	if _, err := NewStackedDeck(rand.New(rand.NewPCG(1, 1)), MustParseCards("As As")); err == nil {
		t.Error("expected duplicate error")
	}
}

func BenchmarkDeckShuffle(b *testing.B) {
	d := NewDeck(rand.New(rand.NewPCG(1, 1)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Shuffle()
	}
}
