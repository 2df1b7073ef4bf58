package game

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Status is a round's lifecycle position.
type Status uint8

const (
	StatusDealing Status = iota
	StatusAwaitingPlacement
	StatusComplete
	StatusScored
	StatusCancelled
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusDealing:
		return "dealing"
	case StatusAwaitingPlacement:
		return "awaiting_placement"
	case StatusComplete:
		return "complete"
	case StatusScored:
		return "scored"
	case StatusCancelled:
		return "cancelled"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for c := StatusDealing; c <= StatusAborted; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown round status %q", text)
}

// Closed reports whether the round accepts no further moves.
func (s Status) Closed() bool {
	return s >= StatusComplete
}

type seatState struct {
	name    string
	board   *Board
	pending []poker.Card
	dealt   bool

	fantasy   bool
	hand      []poker.Card
	submitted bool
}

func (s *seatState) done() bool {
	if s.fantasy {
		return s.submitted
	}
	return s.board.Complete()
}

// undoRecord remembers the last turn-based placement.
type undoRecord struct {
	seat      int
	card      poker.Card
	row       poker.Row
	index     int
	prevTurn  int
	passed    bool
	next      int
	dealt     []poker.Card
	firstDeal bool
}

// RoundConfig sets up a round.
type RoundConfig struct {
	ID     string
	Number int
	Rules  *rules.Rules
	Deck   *poker.Deck
	Names  []string
	// Fantasy holds each seat's state after Deal; Active seats receive a full hand.
	Fantasy   []FantasyState
	FirstSeat int
	// OnScored runs once, inside the final submission, with the finished boards.
	OnScored func(boards []*Board, sheet *ScoreSheet)
	// OnClosed runs when the round is cancelled or aborted after dealing.
	OnClosed func(status Status)
}

// Round is one deal of OFC: every seat fills a board, then the boards are
// scored. All mutating calls are serialised; a call that arrives while
// another is in flight is rejected with ErrBusy.
type Round struct {
	busy atomic.Bool
	mu   sync.Mutex

	id     string
	number int
	rules  *rules.Rules
	ladder poker.Ladder
	deck   *poker.Deck
	seats  []*seatState
	order  []int
	turn   int

	status    Status
	reason    string
	discarded []poker.Card
	last      *undoRecord
	sheet     *ScoreSheet

	onScored func([]*Board, *ScoreSheet)
	onClosed func(Status)
	logger   zerolog.Logger
}

// NewRound deals a round. If the deal itself fails the round is returned in
// StatusAborted along with the error.
func NewRound(logger zerolog.Logger, cfg RoundConfig) (*Round, error) {
	n := len(cfg.Names)
	if cfg.Rules == nil {
		return nil, errors.New("round: rules are required")
	}
	if err := cfg.Rules.Validate(n); err != nil {
		return nil, fmt.Errorf("round: %w", err)
	}
	if cfg.Deck == nil {
		return nil, errors.New("round: deck is required")
	}
	if cfg.Fantasy != nil && len(cfg.Fantasy) != n {
		return nil, fmt.Errorf("round: %d fantasy states for %d seats", len(cfg.Fantasy), n)
	}

	r := &Round{
		id:       cfg.ID,
		number:   cfg.Number,
		rules:    cfg.Rules,
		ladder:   cfg.Rules.Ladder(),
		deck:     cfg.Deck,
		seats:    make([]*seatState, n),
		order:    make([]int, n),
		turn:     -1,
		status:   StatusDealing,
		onScored: cfg.OnScored,
		logger:   logger.With().Str("component", "round").Str("round_id", cfg.ID).Logger(),
	}
	for i := range r.seats {
		r.seats[i] = &seatState{name: cfg.Names[i], board: NewBoard()}
		r.order[i] = (cfg.FirstSeat + i) % n
	}

	for _, seat := range r.order {
		if cfg.Fantasy == nil || cfg.Fantasy[seat].Phase != FantasyActive {
			continue
		}
		s := r.seats[seat]
		s.fantasy = true
		hand, err := r.deck.DrawN(cfg.Fantasy[seat].Cards)
		if err != nil {
			r.abort(err)
			return r, fmt.Errorf("round: fantasy deal for seat %d: %w", seat, err)
		}
		s.hand = hand
	}

	for i, seat := range r.order {
		if r.seats[seat].fantasy {
			continue
		}
		r.turn = i
		if _, err := r.startTurn(seat); err != nil {
			r.abort(err)
			return r, fmt.Errorf("round: initial deal for seat %d: %w", seat, err)
		}
		break
	}

	r.status = StatusAwaitingPlacement
	r.onClosed = cfg.OnClosed
	r.logger.Debug().Int("round", r.number).Int("players", n).Int("first_seat", cfg.FirstSeat).Msg("Round dealt")
	return r, nil
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// Number returns the round's sequence number at its table.
func (r *Round) Number() int { return r.number }

// Status returns the current lifecycle status.
func (r *Round) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Sheet returns the score sheet once the round is scored.
func (r *Round) Sheet() *ScoreSheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sheet
}

// Reason returns why a cancelled or aborted round ended.
func (r *Round) Reason() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reason
}

// Current returns the seat whose turn it is. ok is false when no incremental
// turns remain.
func (r *Round) Current() (seat int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

func (r *Round) current() (int, bool) {
	if r.turn < 0 || r.status != StatusAwaitingPlacement {
		return -1, false
	}
	return r.order[r.turn], true
}

// FantasySeats lists seats that still owe a fantasy placement.
func (r *Round) FantasySeats() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, seat := range r.order {
		if s := r.seats[seat]; s.fantasy && !s.submitted {
			out = append(out, seat)
		}
	}
	return out
}

// Pending returns the cards a seat holds but has not placed.
func (r *Round) Pending(seat int) ([]poker.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.seat(seat)
	if err != nil {
		return nil, moveErr("pending", seat, err)
	}
	if s.fantasy {
		return slices.Clone(s.hand), nil
	}
	return slices.Clone(s.pending), nil
}

// LegalDestinations lists rows of seat's board that can take card.
func (r *Round) LegalDestinations(seat int, card poker.Card) ([]poker.Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.seat(seat)
	if err != nil {
		return nil, moveErr("legal_destinations", seat, err)
	}
	rows, err := LegalDestinations(s.board, card)
	if err != nil {
		return nil, moveErr("legal_destinations", seat, err)
	}
	return rows, nil
}

// BoardDelta reports the effect of an accepted move.
type BoardDelta struct {
	Seat     int          `json:"seat"`
	Card     poker.Card   `json:"card"`
	Row      poker.Row    `json:"row"`
	Board    BoardView    `json:"board"`
	Pending  []poker.Card `json:"pending"`
	NextSeat int          `json:"next_seat"`
	Status   Status       `json:"status"`
}

// SubmitMove places one pending card for the seat whose turn it is. When the
// seat's hand is empty the turn passes and the next seat is dealt. The final
// placement of the round scores it before returning.
func (r *Round) SubmitMove(seat int, card poker.Card, row poker.Row) (BoardDelta, error) {
	const op = "submit_move"
	if !r.busy.CompareAndSwap(false, true) {
		return BoardDelta{}, r.reject(op, seat, ErrBusy)
	}
	defer r.busy.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusAwaitingPlacement {
		return BoardDelta{}, r.reject(op, seat, ErrRoundClosed)
	}
	s, err := r.seat(seat)
	if err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	if s.fantasy {
		return BoardDelta{}, r.reject(op, seat, fmt.Errorf("fantasy seats submit a whole placement: %w", ErrNotYourTurn))
	}
	if cur, ok := r.current(); !ok || cur != seat {
		return BoardDelta{}, r.reject(op, seat, ErrNotYourTurn)
	}
	idx := slices.Index(s.pending, card)
	if idx < 0 {
		return BoardDelta{}, r.reject(op, seat, fmt.Errorf("%s: %w", card, ErrCardNotPending))
	}
	if err := s.board.Place(card, row); err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	s.pending = slices.Delete(s.pending, idx, idx+1)

	rec := &undoRecord{seat: seat, card: card, row: row, index: idx, prevTurn: r.turn, next: -1}
	delta := BoardDelta{Seat: seat, Card: card, Row: row, NextSeat: seat}
	if len(s.pending) == 0 {
		next, dealt, first, auto, err := r.advance()
		if err != nil {
			r.abort(err)
			return BoardDelta{}, r.reject(op, seat, err)
		}
		rec.passed, rec.next, rec.dealt, rec.firstDeal = true, next, dealt, first
		if auto {
			rec = nil
		}
		delta.NextSeat = next
	}
	r.last = rec

	if err := r.settleIfDone(); err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	delta.Board = s.board.View()
	delta.Pending = slices.Clone(s.pending)
	delta.Status = r.status
	r.logger.Debug().Int("seat", seat).Str("card", card.String()).Str("row", row.String()).Int("next_seat", delta.NextSeat).Msg("Card placed")
	return delta, nil
}

// SubmitFantasy places a whole fantasy hand. Unused cards are discarded.
func (r *Round) SubmitFantasy(seat int, p Placement) (BoardDelta, error) {
	const op = "submit_fantasy"
	if !r.busy.CompareAndSwap(false, true) {
		return BoardDelta{}, r.reject(op, seat, ErrBusy)
	}
	defer r.busy.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusAwaitingPlacement {
		return BoardDelta{}, r.reject(op, seat, ErrRoundClosed)
	}
	s, err := r.seat(seat)
	if err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	if !s.fantasy {
		return BoardDelta{}, r.reject(op, seat, fmt.Errorf("seat is not in fantasy land: %w", ErrNotYourTurn))
	}
	if s.submitted {
		return BoardDelta{}, r.reject(op, seat, ErrBoardComplete)
	}
	if len(p.Top) != poker.Top.Size() || len(p.Middle) != poker.Middle.Size() || len(p.Bottom) != poker.Bottom.Size() {
		return BoardDelta{}, r.reject(op, seat, fmt.Errorf("rows of %d/%d/%d cards: %w", len(p.Top), len(p.Middle), len(p.Bottom), ErrInvalidPlacement))
	}
	for _, c := range p.Cards() {
		if !slices.Contains(s.hand, c) {
			return BoardDelta{}, r.reject(op, seat, fmt.Errorf("%s: %w", c, ErrCardNotPending))
		}
	}
	board, err := NewBoardFrom(p.Top, p.Middle, p.Bottom)
	if err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	if s.board.forfeit {
		board.Forfeit()
	}

	for _, c := range s.hand {
		if !board.Contains(c) {
			r.discarded = append(r.discarded, c)
		}
	}
	s.board, s.hand, s.submitted = board, nil, true

	if err := r.settleIfDone(); err != nil {
		return BoardDelta{}, r.reject(op, seat, err)
	}
	r.logger.Debug().Int("seat", seat).Msg("Fantasy hand placed")
	return BoardDelta{Seat: seat, Board: board.View(), NextSeat: r.turnSeat(), Status: r.status}, nil
}

// UndoLastMove takes back the seat's most recent placement and returns the
// card to its hand. Only the last turn-based move of the round can be undone,
// and only while the seat's board is incomplete. If that move passed the
// turn, the next seat's dealt cards go back on the deck.
func (r *Round) UndoLastMove(seat int) error {
	const op = "undo"
	if !r.busy.CompareAndSwap(false, true) {
		return r.reject(op, seat, ErrBusy)
	}
	defer r.busy.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusAwaitingPlacement {
		return r.reject(op, seat, ErrRoundClosed)
	}
	s, err := r.seat(seat)
	if err != nil {
		return r.reject(op, seat, err)
	}
	if s.board.Complete() {
		return r.reject(op, seat, ErrBoardComplete)
	}
	rec := r.last
	if rec == nil || rec.seat != seat {
		return r.reject(op, seat, ErrNothingToUndo)
	}

	if rec.passed && rec.next >= 0 {
		next := r.seats[rec.next]
		if len(next.pending) != len(rec.dealt) {
			return r.reject(op, seat, fmt.Errorf("seat %d hand changed since deal", rec.next))
		}
		if err := r.deck.Return(rec.dealt...); err != nil {
			return r.reject(op, seat, err)
		}
		next.pending = next.pending[:0]
		if rec.firstDeal {
			next.dealt = false
		}
	}
	if err := s.board.unplace(rec.row, rec.card); err != nil {
		return r.reject(op, seat, err)
	}
	s.pending = slices.Insert(s.pending, min(rec.index, len(s.pending)), rec.card)
	r.turn = rec.prevTurn
	r.last = nil
	r.logger.Debug().Int("seat", seat).Str("card", rec.card.String()).Msg("Move undone")
	return nil
}

// Forfeit fouls a seat and fills its board automatically. It is the fallback
// for a seat that cannot or will not play.
func (r *Round) Forfeit(seat int) error {
	const op = "forfeit"
	if !r.busy.CompareAndSwap(false, true) {
		return r.reject(op, seat, ErrBusy)
	}
	defer r.busy.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusAwaitingPlacement {
		return r.reject(op, seat, ErrRoundClosed)
	}
	s, err := r.seat(seat)
	if err != nil {
		return r.reject(op, seat, err)
	}
	s.board.Forfeit()
	r.last = nil
	r.logger.Warn().Int("seat", seat).Msg("Seat forfeited")

	switch {
	case s.fantasy && !s.submitted:
		hand := s.hand
		for _, c := range hand {
			if s.board.Complete() {
				r.discarded = append(r.discarded, c)
				continue
			}
			if err := placeFirstLegal(s.board, c); err != nil {
				r.abort(err)
				return r.reject(op, seat, err)
			}
		}
		s.hand, s.submitted = nil, true
	case !s.fantasy:
		if cur, ok := r.current(); ok && cur == seat {
			if err := r.autoplay(s); err != nil {
				r.abort(err)
				return r.reject(op, seat, err)
			}
			if _, _, _, _, err := r.advance(); err != nil {
				r.abort(err)
				return r.reject(op, seat, err)
			}
		}
	}
	if err := r.settleIfDone(); err != nil {
		return r.reject(op, seat, err)
	}
	return nil
}

// Cancel ends the round without scoring. Boards, deck and hands are left as
// they were for audit.
func (r *Round) Cancel(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.Closed() {
		return &MoveError{Op: "cancel", Seat: -1, Kind: KindProtocol, Err: ErrRoundClosed}
	}
	r.status = StatusCancelled
	r.reason = reason
	r.logger.Warn().Str("reason", reason).Msg("Round cancelled")
	if r.onClosed != nil {
		r.onClosed(r.status)
	}
	return nil
}

// Accounted counts every card the round owns: undealt, on boards, in hands
// and discarded. It is always 52.
func (r *Round) Accounted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounted()
}

func (r *Round) accounted() int {
	n := r.deck.Remaining() + len(r.discarded)
	for _, s := range r.seats {
		n += s.board.Len() + len(s.pending) + len(s.hand)
	}
	return n
}

// MoveRequest builds the Agent Port request for the seat to act.
func (r *Round) MoveRequest(seat int) (MoveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.seat(seat)
	if err != nil {
		return MoveRequest{}, moveErr("move_request", seat, err)
	}
	if cur, ok := r.current(); !ok || cur != seat || s.fantasy {
		return MoveRequest{}, moveErr("move_request", seat, ErrNotYourTurn)
	}
	req := MoveRequest{
		RoundID:   r.id,
		Seat:      seat,
		Board:     s.board.View(),
		Pending:   slices.Clone(s.pending),
		Opponents: r.opponents(seat),
		ThinkTime: r.rules.Agent.ThinkTime,
	}
	if len(s.pending) > 0 {
		req.Legal, _ = LegalDestinations(s.board, s.pending[0])
	}
	return req, nil
}

// FantasyRequest builds the Agent Port request for a fantasy seat.
func (r *Round) FantasyRequest(seat int) (FantasyRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.seat(seat)
	if err != nil {
		return FantasyRequest{}, moveErr("fantasy_request", seat, err)
	}
	if !s.fantasy || s.submitted {
		return FantasyRequest{}, moveErr("fantasy_request", seat, ErrNotYourTurn)
	}
	return FantasyRequest{
		RoundID:   r.id,
		Seat:      seat,
		Cards:     slices.Clone(s.hand),
		Opponents: r.opponents(seat),
		ThinkTime: r.rules.Agent.ThinkTime,
	}, nil
}

func (r *Round) opponents(seat int) []OpponentView {
	out := make([]OpponentView, 0, len(r.seats)-1)
	for _, i := range r.order {
		if i == seat {
			continue
		}
		o := r.seats[i]
		v := OpponentView{Seat: i, Name: o.name, Fantasy: o.fantasy, Board: o.board.View()}
		out = append(out, v)
	}
	return out
}

// SeatSnapshot is a read-only view of one seat.
type SeatSnapshot struct {
	Seat         int          `json:"seat"`
	Name         string       `json:"name"`
	Board        BoardView    `json:"board"`
	Pending      []poker.Card `json:"pending,omitempty"`
	Fantasy      bool         `json:"fantasy,omitempty"`
	FantasyCards int          `json:"fantasy_cards,omitempty"`
	Submitted    bool         `json:"submitted,omitempty"`
}

// RoundSnapshot is a read-only view of a round.
type RoundSnapshot struct {
	ID            string         `json:"id"`
	Number        int            `json:"number"`
	Status        Status         `json:"status"`
	Reason        string         `json:"reason,omitempty"`
	Turn          int            `json:"turn"`
	Seats         []SeatSnapshot `json:"seats"`
	DeckRemaining int            `json:"deck_remaining"`
	Discarded     int            `json:"discarded"`
	Sheet         *ScoreSheet    `json:"sheet,omitempty"`
}

// Snapshot returns a consistent copy of the round state.
func (r *Round) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := RoundSnapshot{
		ID:            r.id,
		Number:        r.number,
		Status:        r.status,
		Reason:        r.reason,
		Turn:          r.turnSeat(),
		Seats:         make([]SeatSnapshot, len(r.seats)),
		DeckRemaining: r.deck.Remaining(),
		Discarded:     len(r.discarded),
		Sheet:         r.sheet,
	}
	for i, s := range r.seats {
		ss := SeatSnapshot{Seat: i, Name: s.name, Board: s.board.View(), Fantasy: s.fantasy, Submitted: s.submitted}
		if s.fantasy {
			ss.Pending = slices.Clone(s.hand)
			ss.FantasyCards = len(s.hand)
		} else {
			ss.Pending = slices.Clone(s.pending)
		}
		snap.Seats[i] = ss
	}
	return snap
}

// Boards returns copies of every seat's board.
func (r *Round) Boards() []*Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Board, len(r.seats))
	for i, s := range r.seats {
		out[i] = s.board.Clone()
	}
	return out
}

func (r *Round) turnSeat() int {
	if seat, ok := r.current(); ok {
		return seat
	}
	return -1
}

func (r *Round) seat(seat int) (*seatState, error) {
	if seat < 0 || seat >= len(r.seats) {
		return nil, fmt.Errorf("seat %d: %w", seat, ErrUnknownSeat)
	}
	return r.seats[seat], nil
}

// startTurn deals the seat its next street.
func (r *Round) startTurn(seat int) ([]poker.Card, error) {
	s := r.seats[seat]
	n := r.rules.StreetDeal
	if !s.dealt {
		n = r.rules.InitialDeal
	}
	n = min(n, rules.BoardSize-s.board.Len())
	cards, err := r.deck.DrawN(n)
	if err != nil {
		return nil, err
	}
	s.pending = append(s.pending, cards...)
	s.dealt = true
	return cards, nil
}

// advance passes the turn to the next seat with an incomplete board and deals
// to it. Forfeited seats are played out automatically; auto reports whether
// that happened.
func (r *Round) advance() (next int, dealt []poker.Card, first, auto bool, err error) {
	for {
		r.turn = r.nextTurn()
		if r.turn < 0 {
			return -1, nil, false, auto, nil
		}
		seat := r.order[r.turn]
		s := r.seats[seat]
		first = !s.dealt
		dealt, err = r.startTurn(seat)
		if err != nil {
			return -1, nil, false, auto, err
		}
		if !s.board.forfeit {
			return seat, dealt, first, auto, nil
		}
		if err := r.autoplay(s); err != nil {
			return -1, nil, false, true, err
		}
		auto = true
	}
}

// nextTurn finds the next position in turn order, after the current one, whose
// standard seat still needs cards. The current seat is considered last.
func (r *Round) nextTurn() int {
	n := len(r.order)
	start := max(r.turn, 0)
	for i := 1; i <= n; i++ {
		pos := (start + i) % n
		s := r.seats[r.order[pos]]
		if !s.fantasy && !s.board.Complete() {
			return pos
		}
	}
	return -1
}

func (r *Round) autoplay(s *seatState) error {
	for _, c := range s.pending {
		if err := placeFirstLegal(s.board, c); err != nil {
			return err
		}
	}
	s.pending = s.pending[:0]
	return nil
}

func placeFirstLegal(b *Board, c poker.Card) error {
	rows, err := LegalDestinations(b, c)
	if err != nil {
		return err
	}
	return b.Place(c, rows[0])
}

// settleIfDone checks card accounting after a mutation and scores the round
// once every seat has finished.
func (r *Round) settleIfDone() error {
	if got := r.accounted(); got != len(poker.FullDeck()) {
		err := fmt.Errorf("card accounting: %d cards tracked", got)
		r.abort(err)
		return err
	}
	if r.turn >= 0 {
		return nil
	}
	for _, s := range r.seats {
		if !s.done() {
			return nil
		}
	}

	r.status = StatusComplete
	boards := make([]*Board, len(r.seats))
	for i, s := range r.seats {
		boards[i] = s.board
	}
	sheet, err := ScoreRound(boards, r.rules)
	if err != nil {
		r.abort(err)
		return err
	}
	r.sheet = sheet
	r.status = StatusScored
	r.last = nil
	r.logger.Info().Ints("totals", sheet.Totals()).Msg("Round scored")
	if r.onScored != nil {
		clones := make([]*Board, len(boards))
		for i, b := range boards {
			clones[i] = b.Clone()
		}
		r.onScored(clones, sheet)
	}
	return nil
}

// abort records a terminal failure. The round keeps its cards for audit.
func (r *Round) abort(err error) {
	r.status = StatusAborted
	r.reason = err.Error()
	r.logger.Error().Err(err).Msg("Round aborted")
	if r.onClosed != nil {
		r.onClosed(r.status)
	}
}

func (r *Round) reject(op string, seat int, err error) error {
	me := moveErr(op, seat, err)
	r.logger.Warn().Str("op", op).Int("seat", seat).Stringer("kind", KindOf(me)).Err(err).Msg("Move rejected")
	return me
}
