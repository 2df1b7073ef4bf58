package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/render"
	"github.com/lox/openface/poker"
)

type ScoreCmd struct {
	Boards []string `kong:"arg,help='One board per player as top/middle/bottom, e.g. Qs Qh 4c/9d 9c 9s 2h 2d/As Ah Ad Ac Ks'"`
	Names  []string `kong:"help='Player names in seat order'"`
	JSON   bool     `kong:"help='Print the score sheet as JSON'"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	r, err := g.loadRules()
	if err != nil {
		return err
	}
	if err := r.Validate(len(c.Boards)); err != nil {
		return err
	}

	boards := make([]*game.Board, len(c.Boards))
	for i, s := range c.Boards {
		b, err := parseBoard(s)
		if err != nil {
			return fmt.Errorf("board %d: %w", i, err)
		}
		boards[i] = b
	}
	sheet, err := game.ScoreRound(boards, r)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sheet)
	}

	names := make([]string, len(boards))
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
		if i < len(c.Names) {
			names[i] = c.Names[i]
		}
	}
	for i, b := range boards {
		fmt.Println(render.Board(names[i], b.View()))
	}
	fmt.Println(render.Sheet(names, sheet))
	return nil
}

// parseBoard reads "top/middle/bottom" where each row is space separated cards.
func parseBoard(s string) (*game.Board, error) {
	parts := strings.Split(s, "/")
	if len(parts) != len(poker.Rows) {
		return nil, fmt.Errorf("want top/middle/bottom, got %q", s)
	}
	var rows [3][]poker.Card
	for i, part := range parts {
		cards, err := poker.ParseCards(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", poker.Rows[i], err)
		}
		rows[i] = cards
	}
	b, err := game.NewBoardFrom(rows[0], rows[1], rows[2])
	if err != nil {
		return nil, err
	}
	if !b.Complete() {
		return nil, game.ErrBoardIncomplete
	}
	return b, nil
}
