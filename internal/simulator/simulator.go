// Package simulator plays many bot-vs-bot OFC rounds concurrently and
// aggregates per-seat results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/openface/internal/bot"
	"github.com/lox/openface/internal/fileutil"
	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Bots    []string // Bot kind per seat
	Rules   *rules.Rules
	Seed    int64
	Workers int           // Independent sessions played in parallel
	Timeout time.Duration // Per round
	Logger  zerolog.Logger
	// BotLogger receives bot decisions. Nil discards them.
	BotLogger *log.Logger
}

// Simulator runs OFC round simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rules == nil {
		config.Rules = rules.Default()
	}
	if err := config.Rules.Validate(len(config.Bots)); err != nil {
		return nil, err
	}
	for _, kind := range config.Bots {
		if !slices.Contains(bot.Names(), kind) {
			return nil, fmt.Errorf("unknown bot %q (want one of %v)", kind, bot.Names())
		}
	}
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	config.Workers = max(1, min(config.Workers, config.Rounds))
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.BotLogger == nil {
		config.BotLogger = log.NewWithOptions(io.Discard, log.Options{})
	}
	config.Seed = randutil.Seed(config.Seed)
	return &Simulator{config: config}, nil
}

// SeatReport summarises one seat over the whole run.
type SeatReport struct {
	Seat           int                    `json:"seat"`
	Bot            string                 `json:"bot"`
	Score          int                    `json:"score"`
	Mean           float64                `json:"mean"`
	StdDev         float64                `json:"std_dev"`
	CI95           [2]float64             `json:"ci95"`
	FoulRate       float64                `json:"foul_rate"`
	FantasyEntries int                    `json:"fantasy_entries"`
	FantasyRepeats int                    `json:"fantasy_repeats"`
	LongestFantasy int                    `json:"longest_fantasy"`
	Stats          *statistics.Statistics `json:"stats"`
}

// Report is the outcome of a simulation run.
type Report struct {
	Seed     int64         `json:"seed"`
	Rounds   int           `json:"rounds"`
	Scored   int           `json:"scored"`
	Failed   int           `json:"failed"` // Rounds cancelled or aborted
	Workers  int           `json:"workers"`
	Elapsed  time.Duration `json:"elapsed"`
	Seats    []SeatReport  `json:"seats"`
	Failures []string      `json:"failures,omitempty"`
}

// session is what one worker contributes.
type session struct {
	stats    []*statistics.Statistics
	players  []game.Player
	failures []string
}

// Run plays Rounds rounds split across Workers sessions. Each session is one
// table, so fantasy land carries between its rounds.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	cfg := s.config
	n := len(cfg.Bots)

	var (
		mu      sync.Mutex
		results []session
	)
	g, ctx := errgroup.WithContext(ctx)
	per, extra := cfg.Rounds/cfg.Workers, cfg.Rounds%cfg.Workers
	for w := 0; w < cfg.Workers; w++ {
		rounds := per
		if w < extra {
			rounds++
		}
		g.Go(func() error {
			res, err := s.session(ctx, w, rounds)
			if err != nil {
				return fmt.Errorf("session %d: %w", w, err)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Seed: cfg.Seed, Rounds: cfg.Rounds, Workers: cfg.Workers, Seats: make([]SeatReport, n)}
	for seat, kind := range cfg.Bots {
		report.Seats[seat] = SeatReport{Seat: seat, Bot: kind, Stats: &statistics.Statistics{}}
	}
	for _, res := range results {
		report.Failures = append(report.Failures, res.failures...)
		for seat := range report.Seats {
			sr := &report.Seats[seat]
			sr.Stats.Merge(res.stats[seat])
			p := res.players[seat]
			sr.Score += p.Score
			sr.FantasyEntries += p.FantasyEntries
			sr.FantasyRepeats += p.FantasyRepeats
			sr.LongestFantasy = max(sr.LongestFantasy, p.LongestFantasy)
		}
	}
	report.Failed = len(report.Failures)
	report.Scored = cfg.Rounds - report.Failed
	for seat := range report.Seats {
		sr := &report.Seats[seat]
		sr.Mean = sr.Stats.Mean()
		sr.StdDev = sr.Stats.StdDev()
		low, high := sr.Stats.ConfidenceInterval95()
		sr.CI95 = [2]float64{low, high}
		sr.FoulRate = sr.Stats.FoulRate()
		if report.Scored > 0 {
			if err := sr.Stats.Validate(); err != nil {
				return nil, fmt.Errorf("seat %d statistics: %w", seat, err)
			}
		}
	}
	if err := checkZeroSum(report); err != nil {
		return nil, err
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

// session plays rounds on one table. A round that fails is recorded and the
// session moves on; only cancellation of ctx stops it early.
func (s *Simulator) session(ctx context.Context, worker, rounds int) (session, error) {
	cfg := s.config
	n := len(cfg.Bots)
	logger := cfg.Logger.With().Str("component", "simulator").Int("worker", worker).Logger()

	names := make([]string, n)
	agents := make([]game.Agent, n)
	for seat, kind := range cfg.Bots {
		names[seat] = fmt.Sprintf("%s-%d", kind, seat)
		a, err := bot.New(kind, randutil.Stream(cfg.Seed, cfg.Workers+worker*n+seat), cfg.BotLogger, cfg.Rules)
		if err != nil {
			return session{}, err
		}
		agents[seat] = a
	}
	table, err := game.NewTable(logger, cfg.Rules, names, randutil.Stream(cfg.Seed, worker))
	if err != nil {
		return session{}, err
	}

	res := session{stats: make([]*statistics.Statistics, n)}
	for seat := range res.stats {
		res.stats[seat] = &statistics.Statistics{}
	}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return session{}, err
		}
		round, err := table.NewRound()
		if err != nil {
			return session{}, err
		}
		first := i % n
		rctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		sheet, err := game.NewRunner(logger, round, agents, cfg.Rules.Agent).Run(rctx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return session{}, ctx.Err()
			}
			logger.Warn().Err(err).Str("round_id", round.ID()).Msg("Round failed")
			res.failures = append(res.failures, fmt.Sprintf("%s: %v", round.ID(), err))
			continue
		}

		snap := round.Snapshot()
		for seat, sr := range sheet.Seats {
			res.stats[seat].Add(statistics.RoundResult{
				Points:    sr.Total,
				Seed:      cfg.Seed,
				Position:  (seat - first + n) % n,
				Fouled:    sr.Fouled,
				Scoops:    scoops(sheet, seat),
				Royalties: sr.Royalties.Total(),
				Fantasy:   snap.Seats[seat].Fantasy,
			})
		}
	}
	res.players = table.Players()
	logger.Debug().Int("rounds", rounds).Ints("scores", table.Scores()).Msg("Session complete")
	return res, nil
}

func scoops(sheet *game.ScoreSheet, seat int) int {
	n := 0
	for _, pr := range sheet.Pairs {
		if (pr.A == seat && pr.Scoop > 0) || (pr.B == seat && pr.Scoop < 0) {
			n++
		}
	}
	return n
}

var errNotZeroSum = errors.New("seat scores do not sum to zero")

func checkZeroSum(r *Report) error {
	sum := 0
	for _, s := range r.Seats {
		sum += s.Score
	}
	if sum != 0 {
		return fmt.Errorf("%w: %d", errNotZeroSum, sum)
	}
	return nil
}

// WriteJSON writes the report to path atomically.
func (r *Report) WriteJSON(path string) error {
	return fileutil.WriteJSON(path, r)
}

// Summary writes a plain-text summary of the report.
func (r *Report) Summary(w io.Writer) {
	bots := make([]string, len(r.Seats))
	for i, s := range r.Seats {
		bots[i] = s.Bot
	}
	fmt.Fprintf(w, "\n=== RESULTS: %s ===\n", strings.Join(bots, " vs "))
	fmt.Fprintf(w, "Rounds: %d scored, %d failed (seed %d, %d workers, %s)\n",
		r.Scored, r.Failed, r.Seed, r.Workers, r.Elapsed.Round(time.Millisecond))
	for _, s := range r.Seats {
		st := s.Stats
		fmt.Fprintf(w, "\nSeat %d (%s)\n", s.Seat, s.Bot)
		fmt.Fprintf(w, "  Score: %d (%.3f ± %.3f points/round, 95%% CI [%.3f, %.3f])\n",
			s.Score, s.Mean, st.StdError(), s.CI95[0], s.CI95[1])
		fmt.Fprintf(w, "  Percentiles: P5=%.1f, P25=%.1f, P50=%.1f, P75=%.1f, P95=%.1f\n",
			st.Percentile(0.05), st.Percentile(0.25), st.Median(), st.Percentile(0.75), st.Percentile(0.95))
		fmt.Fprintf(w, "  Fouls: %d (%.1f%%), scoops: %d, royalties: %d\n",
			st.Fouls, s.FoulRate*100, st.Scoops, st.Royalties)
		fmt.Fprintf(w, "  Fantasy: %d entries, %d repeats, longest streak %d, %d rounds\n",
			s.FantasyEntries, s.FantasyRepeats, s.LongestFantasy, st.FantasyRounds)
		for pos := range st.Positions {
			fmt.Fprintf(w, "  Position %d: %d rounds, %.3f points/round\n", pos, st.Positions[pos].Rounds, st.PositionMean(pos))
		}
	}
}
