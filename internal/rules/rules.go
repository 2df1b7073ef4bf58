// Package rules holds the configurable parameters of an OFC table: royalty
// schedule, fantasy land policy, deal sizes, the cross-street ladder and the
// agent time budget. Values are plain data; the game package interprets them.
package rules

import (
	"fmt"
	"time"

	"github.com/lox/openface/poker"
)

// Board geometry.
const (
	BoardSize  = 13
	MinPlayers = 2
	MaxPlayers = 3
)

// CrossStreet names the ladder used for foul detection.
type CrossStreet string

const (
	CrossStreetStrict CrossStreet = "strict"
	CrossStreetPoker  CrossStreet = "poker"
)

// Fallback is applied when an agent times out, errors, or answers illegally.
type Fallback string

const (
	// FallbackFirstLegal places each pending card in the first legal row.
	FallbackFirstLegal Fallback = "first_legal"
	// FallbackForfeit fouls the seat and fills its board automatically.
	FallbackForfeit Fallback = "forfeit"
)

// AgentPolicy bounds how long a seat may think.
type AgentPolicy struct {
	ThinkTime time.Duration
	Fallback  Fallback
}

// Rules is a complete variant configuration.
type Rules struct {
	ScoopBonus      int
	InitialDeal     int
	StreetDeal      int
	CrossStreet     CrossStreet
	FouledRoyalties bool
	Royalties       RoyaltyTable
	Fantasy         FantasyRules
	Agent           AgentPolicy
}

// Default returns the standard pineapple-free OFC rules.
func Default() *Rules {
	return &Rules{
		ScoopBonus:  3,
		InitialDeal: 5,
		StreetDeal:  1,
		CrossStreet: CrossStreetStrict,
		Royalties:   DefaultRoyalties(),
		Fantasy:     DefaultFantasy(),
		Agent: AgentPolicy{
			ThinkTime: 30 * time.Second,
			Fallback:  FallbackFirstLegal,
		},
	}
}

// Ladder returns the foul-check ladder selected by CrossStreet.
func (r *Rules) Ladder() poker.Ladder {
	if r.CrossStreet == CrossStreetPoker {
		return poker.PokerLadder()
	}
	return poker.StrictLadder()
}

// Validate checks the rules for a table of the given size.
func (r *Rules) Validate(players int) error {
	if players < MinPlayers || players > MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", MinPlayers, MaxPlayers, players)
	}
	if r.ScoopBonus < 0 {
		return fmt.Errorf("scoop_bonus must not be negative")
	}
	if r.InitialDeal < 1 || r.InitialDeal > BoardSize {
		return fmt.Errorf("initial_deal must be between 1 and %d, got %d", BoardSize, r.InitialDeal)
	}
	if r.StreetDeal < 1 {
		return fmt.Errorf("street_deal must be positive, got %d", r.StreetDeal)
	}
	if (BoardSize-r.InitialDeal)%r.StreetDeal != 0 {
		return fmt.Errorf("initial_deal %d plus streets of %d cannot make %d cards", r.InitialDeal, r.StreetDeal, BoardSize)
	}
	switch r.CrossStreet {
	case CrossStreetStrict, CrossStreetPoker:
	default:
		return fmt.Errorf("unknown cross_street %q", r.CrossStreet)
	}
	if err := r.Royalties.validate(); err != nil {
		return err
	}
	if err := r.Fantasy.validate(players); err != nil {
		return err
	}
	if r.Agent.ThinkTime <= 0 {
		return fmt.Errorf("agent think_time must be positive")
	}
	switch r.Agent.Fallback {
	case FallbackFirstLegal, FallbackForfeit:
	default:
		return fmt.Errorf("unknown agent fallback %q", r.Agent.Fallback)
	}
	return nil
}

// Streets returns the number of dealing turns each standard player takes.
func (r *Rules) Streets() int {
	return 1 + (BoardSize-r.InitialDeal)/r.StreetDeal
}
