package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/simulator"
)

type SimulateCmd struct {
	Bots    []string      `kong:"default='greedy,random',help='Bot kind per seat (greedy, random)'"`
	Rounds  int           `kong:"default='1000',help='Number of rounds to play'"`
	Seed    int64         `kong:"help='Random seed (0 for time-based)'"`
	Workers int           `kong:"help='Parallel table sessions (default: number of CPUs)'"`
	Timeout time.Duration `kong:"default='1m',help='Timeout per round'"`
	Out     string        `kong:"help='Write the JSON report to this file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := setupLogger(g.Debug)
	r, err := g.loadRules()
	if err != nil {
		return err
	}

	// Per-round table logs are only useful when debugging.
	simLogger := logger
	if !g.Debug {
		simLogger = logger.Level(zerolog.WarnLevel)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sim, err := simulator.New(simulator.Config{
		Rounds:    c.Rounds,
		Bots:      c.Bots,
		Rules:     r,
		Seed:      c.Seed,
		Workers:   workers,
		Timeout:   c.Timeout,
		Logger:    simLogger,
		BotLogger: setupBotLogger(g.Debug),
	})
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	report.Summary(os.Stdout)

	if c.Out != "" {
		if err := report.WriteJSON(c.Out); err != nil {
			return err
		}
		logger.Info().Str("path", c.Out).Msg("Report written")
	}
	return nil
}
