package main

import (
	"fmt"

	"github.com/lox/openface/internal/bot"
	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/remote"
	"github.com/lox/openface/internal/render"
)

type BotCmd struct {
	Kind  string `arg:"" help:"Bot type (greedy, random)"`
	Host  string `default:"http://localhost:8080" help:"Host URL (http, https, ws or wss)"`
	Name  string `help:"Name shown at the table (default: bot type and a random suffix)"`
	Seed  int64  `help:"Random seed (0 for time-based)"`
	Token string `env:"OFC_TOKEN" help:"Table token, when the host requires one"`
}

func (c *BotCmd) Run(g *Globals) error {
	logger := setupLogger(g.Debug)
	r, err := g.loadRules()
	if err != nil {
		return err
	}

	rng := randutil.New(randutil.Seed(c.Seed))
	agent, err := bot.New(c.Kind, rng, setupBotLogger(g.Debug), r)
	if err != nil {
		return err
	}
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("%s-%04d", c.Kind, rng.IntN(10000))
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	total := 0
	return remote.Play(ctx, logger, remote.ClientConfig{
		URL:   c.Host,
		Name:  name,
		Token: c.Token,
		Agent: agent,
		OnWelcome: func(w remote.WelcomeData) {
			logger.Info().Int("seat", w.Seat).Str("name", w.Name).Int("seats", w.Seats).Msg("Seated")
		},
		OnResult: func(res remote.RoundResultData) {
			fmt.Println(render.Snapshot(res.Round))
			if res.Round.Sheet == nil {
				logger.Warn().Int("round", res.Round.Number).Str("reason", res.Round.Reason).Msg("Round ended unscored")
				return
			}
			total += res.Round.Sheet.Seats[res.Seat].Total
			logger.Info().
				Int("round", res.Round.Number).
				Int("points", res.Round.Sheet.Seats[res.Seat].Total).
				Int("total", total).
				Msg("Round scored")
		},
	})
}
