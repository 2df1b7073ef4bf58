package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/openface/internal/rules"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug     bool   `help:"Enable debug logging" env:"OFC_DEBUG"`
	RulesFile string `help:"HCL rules file (defaults to the standard rules)" env:"OFC_RULES" type:"existingfile"`
}

func (g *Globals) loadRules() (*rules.Rules, error) {
	if g.RulesFile == "" {
		return rules.Default(), nil
	}
	return rules.Load(g.RulesFile)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play bot-vs-bot rounds and report per-seat statistics"`
	Score    ScoreCmd         `cmd:"" help:"Score complete boards"`
	Rules    RulesCmd         `cmd:"" help:"Show and validate the effective rules"`
	Host     HostCmd          `cmd:"" help:"Host a table for remote players"`
	Bot      BotCmd           `cmd:"" help:"Join a hosted table with a built-in bot"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ofc: loading .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ofc"),
		kong.Description("Open Face Chinese poker rule engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
