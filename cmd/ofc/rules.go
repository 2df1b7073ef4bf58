package main

import (
	"fmt"

	"github.com/lox/openface/internal/render"
)

type RulesCmd struct {
	Players int `kong:"default='2',help='Validate the rules for this many players'"`
}

func (c *RulesCmd) Run(g *Globals) error {
	r, err := g.loadRules()
	if err != nil {
		return err
	}
	if err := r.Validate(c.Players); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	fmt.Print(render.Rules(r))
	fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Valid for %d players", c.Players)))
	return nil
}
