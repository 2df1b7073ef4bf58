package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/gameid"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Table seats two or three players and carries scores and fantasy state from
// one round to the next. Only one round may be open at a time.
type Table struct {
	mu        sync.Mutex
	rules     *rules.Rules
	players   []*Player
	rng       *rand.Rand
	ids       *gameid.Generator
	firstSeat int
	rounds    int
	open      bool
	logger    zerolog.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithIDGenerator sets the source of round IDs.
func WithIDGenerator(g *gameid.Generator) TableOption {
	return func(t *Table) { t.ids = g }
}

// WithFirstSeat sets the seat that acts first in the opening round.
func WithFirstSeat(seat int) TableOption {
	return func(t *Table) { t.firstSeat = seat }
}

// NewTable seats the named players under r.
func NewTable(logger zerolog.Logger, r *rules.Rules, names []string, rng *rand.Rand, opts ...TableOption) (*Table, error) {
	if r == nil {
		return nil, errors.New("table: rules are required")
	}
	if err := r.Validate(len(names)); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	if rng == nil {
		return nil, errors.New("table: rng is required")
	}
	t := &Table{
		rules:  r,
		rng:    rng,
		ids:    gameid.NewGenerator(nil),
		logger: logger.With().Str("component", "table").Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.firstSeat < 0 || t.firstSeat >= len(names) {
		return nil, fmt.Errorf("table: first seat %d out of range", t.firstSeat)
	}
	t.players = make([]*Player, len(names))
	for i, name := range names {
		t.players[i] = &Player{Seat: i, Name: name}
	}
	return t, nil
}

// Rules returns the table's rules.
func (t *Table) Rules() *rules.Rules { return t.rules }

// Rounds returns the number of rounds started.
func (t *Table) Rounds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rounds
}

// Players returns copies of the seated players.
func (t *Table) Players() []Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Player, len(t.players))
	for i, p := range t.players {
		out[i] = *p
	}
	return out
}

// Scores returns each seat's running score.
func (t *Table) Scores() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, len(t.players))
	for i, p := range t.players {
		out[i] = p.Score
	}
	return out
}

// NewRound shuffles a fresh deck and deals the next round.
func (t *Table) NewRound() (*Round, error) {
	t.mu.Lock()
	deck := poker.NewDeck(t.rng)
	t.mu.Unlock()
	return t.NewRoundWithDeck(deck)
}

// NewRoundWithDeck deals the next round from deck. Pending fantasy players
// become active and receive their full hand. The first seat rotates each
// round.
func (t *Table) NewRoundWithDeck(deck *poker.Deck) (*Round, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		return nil, ErrRoundInProgress
	}

	names := make([]string, len(t.players))
	states := make([]FantasyState, len(t.players))
	for i, p := range t.players {
		names[i] = p.Name
		st, err := p.Fantasy.Deal()
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		states[i] = st
	}

	number := t.rounds + 1
	cfg := RoundConfig{
		ID:        t.ids.Generate(),
		Number:    number,
		Rules:     t.rules,
		Deck:      deck,
		Names:     names,
		Fantasy:   states,
		FirstSeat: (t.firstSeat + t.rounds) % len(t.players),
		OnScored: func(boards []*Board, sheet *ScoreSheet) {
			t.settle(states, boards, sheet)
		},
		OnClosed: func(Status) { t.close() },
	}
	r, err := NewRound(t.logger, cfg)
	if err != nil {
		return nil, err
	}

	for i, p := range t.players {
		p.Fantasy = states[i]
	}
	t.rounds = number
	t.open = true
	t.logger.Info().Str("round_id", cfg.ID).Int("round", number).Int("first_seat", cfg.FirstSeat).Msg("Round started")
	return r, nil
}

// settle applies a scored round: points, statistics and fantasy transitions.
func (t *Table) settle(dealt []FantasyState, boards []*Board, sheet *ScoreSheet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, p := range t.players {
		after, err := dealt[i].Settle(boards[i], t.rules)
		if err != nil {
			t.logger.Error().Int("seat", i).Err(err).Msg("Fantasy settle failed")
			after = FantasyState{Phase: FantasyNormal}
		}
		scoops := 0
		for _, pr := range sheet.Pairs {
			if (pr.A == i && pr.Scoop > 0) || (pr.B == i && pr.Scoop < 0) {
				scoops++
			}
		}
		p.record(sheet.Seats[i], scoops, dealt[i], after)
		if after.Phase != dealt[i].Phase {
			t.logger.Info().Int("seat", i).Stringer("from", dealt[i].Phase).Stringer("to", after.Phase).Int("cards", after.Cards).Msg("Fantasy transition")
		}
	}
	t.open = false
}

// close releases a round that ended unscored. Active fantasy players keep
// their earned hand for the next round.
func (t *Table) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.players {
		p.Fantasy = p.Fantasy.Restore()
	}
	t.open = false
}
