package game

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Runner drives one round to completion by asking each seat's agent for
// decisions under the table's think-time budget.
type Runner struct {
	round  *Round
	agents []Agent
	policy rules.AgentPolicy
	clock  quartz.Clock
	logger zerolog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock replaces the real clock, for tests.
func WithClock(c quartz.Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// NewRunner binds one agent per seat to round.
func NewRunner(logger zerolog.Logger, round *Round, agents []Agent, policy rules.AgentPolicy, opts ...RunnerOption) *Runner {
	r := &Runner{
		round:  round,
		agents: agents,
		policy: policy,
		clock:  quartz.NewReal(),
		logger: logger.With().Str("component", "runner").Str("round_id", round.ID()).Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays the round out. Fantasy seats choose concurrently first, then
// standard seats take turns. An agent that errors, times out or answers
// illegally gets the fallback for that decision. Cancelling ctx cancels the
// round.
func (r *Runner) Run(ctx context.Context) (*ScoreSheet, error) {
	if n := len(r.round.Snapshot().Seats); len(r.agents) != n {
		return nil, fmt.Errorf("runner: %d agents for %d seats", len(r.agents), n)
	}
	if err := r.runFantasy(ctx); err != nil {
		return nil, r.stop(ctx, err)
	}

	for {
		switch st := r.round.Status(); st {
		case StatusScored:
			return r.round.Sheet(), nil
		case StatusCancelled, StatusAborted:
			return nil, fmt.Errorf("runner: round %s: %s", st, r.round.Reason())
		}
		if err := ctx.Err(); err != nil {
			return nil, r.stop(ctx, err)
		}
		seat, ok := r.round.Current()
		if !ok {
			return nil, fmt.Errorf("runner: round %s has no seat to act", r.round.Status())
		}
		if err := r.turn(ctx, seat); err != nil {
			return nil, r.stop(ctx, err)
		}
	}
}

func (r *Runner) turn(ctx context.Context, seat int) error {
	req, err := r.round.MoveRequest(seat)
	if err != nil {
		return err
	}
	move, err := callAgent(ctx, r.clock, r.policy.ThinkTime, func(ctx context.Context) (Move, error) {
		return r.agents[seat].ChooseMove(ctx, req)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		_, err = r.round.SubmitMove(seat, move.Card, move.Row)
		if err == nil {
			return nil
		}
		if KindOf(err) == KindInternal {
			return err
		}
	}
	r.logger.Warn().Int("seat", seat).Err(err).Str("fallback", string(r.policy.Fallback)).Msg("Agent move failed")
	return r.fallbackMove(seat, req)
}

func (r *Runner) fallbackMove(seat int, req MoveRequest) error {
	if r.policy.Fallback == rules.FallbackForfeit {
		return r.round.Forfeit(seat)
	}
	if len(req.Pending) == 0 || len(req.Legal) == 0 {
		return fmt.Errorf("seat %d has no legal move", seat)
	}
	_, err := r.round.SubmitMove(seat, req.Pending[0], req.Legal[0])
	return err
}

type fantasyChoice struct {
	placement Placement
	err       error
}

// runFantasy gathers every fantasy placement in parallel and submits them in
// seat order.
func (r *Runner) runFantasy(ctx context.Context) error {
	seats := r.round.FantasySeats()
	if len(seats) == 0 {
		return nil
	}
	reqs := make([]FantasyRequest, len(seats))
	for i, seat := range seats {
		req, err := r.round.FantasyRequest(seat)
		if err != nil {
			return err
		}
		reqs[i] = req
	}

	choices := make([]fantasyChoice, len(seats))
	var g errgroup.Group
	for i, seat := range seats {
		g.Go(func() error {
			p, err := callAgent(ctx, r.clock, r.policy.ThinkTime, func(ctx context.Context) (Placement, error) {
				return r.agents[seat].ChooseFantasy(ctx, reqs[i])
			})
			choices[i] = fantasyChoice{placement: p, err: err}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, seat := range seats {
		err := choices[i].err
		if err == nil {
			_, err = r.round.SubmitFantasy(seat, choices[i].placement)
			if err == nil {
				continue
			}
			if KindOf(err) == KindInternal {
				return err
			}
		}
		r.logger.Warn().Int("seat", seat).Err(err).Str("fallback", string(r.policy.Fallback)).Msg("Agent fantasy placement failed")
		if err := r.fallbackFantasy(seat, reqs[i].Cards); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) fallbackFantasy(seat int, hand []poker.Card) error {
	if r.policy.Fallback == rules.FallbackForfeit {
		return r.round.Forfeit(seat)
	}
	_, err := r.round.SubmitFantasy(seat, SimplePlacement(hand))
	return err
}

// SimplePlacement arranges a fantasy hand by rank: the five highest cards on
// the bottom, the next five in the middle and the next three on top. Leftover
// cards are discarded. It does not guard against fouls.
func SimplePlacement(hand []poker.Card) Placement {
	cards := slices.Clone(hand)
	slices.SortFunc(cards, func(a, b poker.Card) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Suit, b.Suit)
	})
	return Placement{
		Bottom: cards[0:5],
		Middle: cards[5:10],
		Top:    cards[10:13],
	}
}

// stop cancels the round when the run ends early for a reason other than a
// round failure, and passes err through.
func (r *Runner) stop(ctx context.Context, err error) error {
	if r.round.Status().Closed() {
		return err
	}
	reason := err.Error()
	if ctx.Err() != nil {
		reason = "run cancelled: " + ctx.Err().Error()
	}
	if cerr := r.round.Cancel(reason); cerr != nil {
		r.logger.Error().Err(cerr).Msg("Failed to cancel round")
	}
	return err
}

// callAgent runs fn with a deadline measured on clock. The agent's context is
// cancelled as soon as the call returns, so a late answer is dropped.
func callAgent[T any](ctx context.Context, clock quartz.Clock, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := clock.AfterFunc(d, func() {
		close(timeoutFired)
	}, "agent")
	defer timer.Stop()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				var zero T
				done <- result{zero, fmt.Errorf("agent panic: %v", p)}
			}
		}()
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	var zero T
	select {
	case res := <-done:
		return res.v, res.err
	case <-timeoutFired:
		return zero, ErrAgentTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// IsTimeout reports whether err came from an agent running out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrAgentTimeout)
}
