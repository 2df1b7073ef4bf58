package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lox/openface/internal/bot"
	"github.com/lox/openface/internal/fileutil"
	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/remote"
	"github.com/lox/openface/internal/render"
)

type HostCmd struct {
	Addr    string   `kong:"default=':8080',help='Server address'"`
	Players int      `kong:"default='2',help='Remote seats to fill before play starts'"`
	Bots    []string `kong:"help='Built-in bots taking the seats after the remote players'"`
	Rounds  int      `kong:"default='1',help='Rounds to play'"`
	Seed    *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Report  string   `kong:"help='Write final player totals as JSON to this file'"`
	Token   string   `kong:"env='OFC_TOKEN',help='Table token remote players must present (optional)'"`
}

func (c *HostCmd) Run(g *Globals) error {
	logger := setupLogger(g.Debug)
	r, err := g.loadRules()
	if err != nil {
		return err
	}
	seats := c.Players + len(c.Bots)
	if err := r.Validate(seats); err != nil {
		return err
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info().Int64("seed", seed).Msg("Using deterministic seed")
	} else {
		seed = randutil.Seed(0)
		logger.Info().Int64("seed", seed).Msg("Using random seed")
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var opts []remote.HostOption
	if c.Token != "" {
		opts = append(opts, remote.WithValidator(remote.NewTokenValidator(c.Token)))
	}
	host := remote.NewHost(logger, c.Players, opts...)
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           host.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer func() {
		host.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Server shutdown failed")
		}
	}()

	logger.Info().
		Str("address", c.Addr).
		Int("remote_seats", c.Players).
		Strs("bots", c.Bots).
		Int("rounds", c.Rounds).
		Dur("think_time", r.Agent.ThinkTime).
		Msg("Waiting for players")

	waitCtx, stopWaiting := context.WithCancel(ctx)
	go func() {
		select {
		case err := <-serverErr:
			logger.Error().Err(err).Msg("Server failed")
			stopWaiting()
		case <-waitCtx.Done():
		}
	}()
	remotes, err := host.Wait(waitCtx)
	stopWaiting()
	if err != nil {
		return err
	}

	agents := make([]game.Agent, 0, seats)
	names := make([]string, 0, seats)
	for _, a := range remotes {
		agents = append(agents, a)
		names = append(names, a.Name())
	}
	botLogger := setupBotLogger(g.Debug)
	for i, kind := range c.Bots {
		a, err := bot.New(kind, randutil.Stream(seed, i+1), botLogger.With("seat", len(agents)), r)
		if err != nil {
			return err
		}
		agents = append(agents, a)
		names = append(names, fmt.Sprintf("%s-%d", kind, len(agents)-1))
	}

	table, err := game.NewTable(logger, r, names, randutil.Stream(seed, 0))
	if err != nil {
		return err
	}
	for i := 0; i < c.Rounds; i++ {
		round, err := table.NewRound()
		if err != nil {
			return err
		}
		_, err = game.NewRunner(logger, round, agents, r.Agent).Run(ctx)
		snap := round.Snapshot()
		host.Announce(snap)
		if err != nil {
			return fmt.Errorf("round %d: %w", snap.Number, err)
		}
		fmt.Println(render.Snapshot(snap))
		if snap.Sheet != nil {
			fmt.Println(render.Sheet(names, snap.Sheet))
		}
	}

	players := table.Players()
	for _, p := range players {
		logger.Info().Int("seat", p.Seat).Str("name", p.Name).Int("score", p.Score).Int("fouls", p.Fouls).Msg("Final score")
	}
	if c.Report != "" {
		if err := fileutil.WriteJSON(c.Report, players); err != nil {
			return err
		}
		logger.Info().Str("path", c.Report).Msg("Report written")
	}
	return nil
}
