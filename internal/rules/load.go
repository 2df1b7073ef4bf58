package rules

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/openface/poker"
)

// fileConfig mirrors the HCL layout. Pointer fields distinguish an omitted
// setting from an explicit zero.
type fileConfig struct {
	ScoopBonus      *int            `hcl:"scoop_bonus,optional"`
	CrossStreet     string          `hcl:"cross_street,optional"`
	InitialDeal     *int            `hcl:"initial_deal,optional"`
	StreetDeal      *int            `hcl:"street_deal,optional"`
	FouledRoyalties *bool           `hcl:"fouled_royalties,optional"`
	Royalties       *royaltiesBlock `hcl:"royalties,block"`
	Fantasy         *fantasyBlock   `hcl:"fantasy,block"`
	Agent           *agentBlock     `hcl:"agent,block"`
}

type royaltiesBlock struct {
	TopPair  map[string]int `hcl:"top_pair,optional"`
	TopTrips map[string]int `hcl:"top_trips,optional"`
	Middle   map[string]int `hcl:"middle,optional"`
	Bottom   map[string]int `hcl:"bottom,optional"`
}

type fantasyBlock struct {
	Mode        string         `hcl:"mode,optional"`
	Entry       string         `hcl:"entry,optional"`
	NormalCards *int           `hcl:"normal_cards,optional"`
	RepeatCards *int           `hcl:"repeat_cards,optional"`
	Progressive map[string]int `hcl:"progressive,optional"`
	StayTop     string         `hcl:"stay_top,optional"`
	StayMiddle  string         `hcl:"stay_middle,optional"`
	StayBottom  string         `hcl:"stay_bottom,optional"`
}

type agentBlock struct {
	ThinkTime string `hcl:"think_time,optional"`
	Fallback  string `hcl:"fallback,optional"`
}

// Load reads rules from an HCL file. A missing file yields Default(). Settings
// omitted from the file keep their default values.
func Load(filename string) (*Rules, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL rules source. filename is used only in diagnostics.
func Parse(src []byte, filename string) (*Rules, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	r := Default()
	if cfg.ScoopBonus != nil {
		r.ScoopBonus = *cfg.ScoopBonus
	}
	if cfg.CrossStreet != "" {
		r.CrossStreet = CrossStreet(cfg.CrossStreet)
	}
	if cfg.InitialDeal != nil {
		r.InitialDeal = *cfg.InitialDeal
	}
	if cfg.StreetDeal != nil {
		r.StreetDeal = *cfg.StreetDeal
	}
	if cfg.FouledRoyalties != nil {
		r.FouledRoyalties = *cfg.FouledRoyalties
	}
	if cfg.Royalties != nil {
		if err := cfg.Royalties.apply(&r.Royalties); err != nil {
			return nil, err
		}
	}
	if cfg.Fantasy != nil {
		if err := cfg.Fantasy.apply(&r.Fantasy); err != nil {
			return nil, err
		}
	}
	if cfg.Agent != nil {
		if err := cfg.Agent.apply(&r.Agent); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// apply replaces whole row tables that the file specifies.
func (b *royaltiesBlock) apply(t *RoyaltyTable) error {
	if b.TopPair != nil {
		m, err := rankTable("top_pair", b.TopPair)
		if err != nil {
			return err
		}
		t.TopPair = m
	}
	if b.TopTrips != nil {
		m, err := rankTable("top_trips", b.TopTrips)
		if err != nil {
			return err
		}
		t.TopTrips = m
	}
	if b.Middle != nil {
		m, royal, err := categoryTable("middle", b.Middle)
		if err != nil {
			return err
		}
		t.MiddleHands, t.MiddleRoyal = m, royal
	}
	if b.Bottom != nil {
		m, royal, err := categoryTable("bottom", b.Bottom)
		if err != nil {
			return err
		}
		t.BottomHands, t.BottomRoyal = m, royal
	}
	return nil
}

func rankTable(name string, in map[string]int) (map[poker.Rank]int, error) {
	out := make(map[poker.Rank]int, len(in))
	for k, v := range in {
		c, err := poker.ParseCard(k + "s")
		if err != nil {
			return nil, fmt.Errorf("royalties.%s: invalid rank %q", name, k)
		}
		out[c.Rank] = v
	}
	return out, nil
}

// categoryTable reads a per-category table; "royal_flush" sets the royal price,
// which otherwise follows the straight flush price.
func categoryTable(name string, in map[string]int) (map[poker.Category]int, int, error) {
	out := make(map[poker.Category]int, len(in))
	royal, haveRoyal := in["royal_flush"]
	for k, v := range in {
		if k == "royal_flush" {
			continue
		}
		c, err := poker.ParseCategory(k)
		if err != nil {
			return nil, 0, fmt.Errorf("royalties.%s: %w", name, err)
		}
		out[c] = v
	}
	if !haveRoyal {
		royal = out[poker.StraightFlush]
	}
	return out, royal, nil
}

func (b *fantasyBlock) apply(f *FantasyRules) error {
	if b.Mode != "" {
		f.Mode = FantasyMode(b.Mode)
	}
	if b.NormalCards != nil {
		f.NormalCards = *b.NormalCards
	}
	if b.RepeatCards != nil {
		f.RepeatCards = *b.RepeatCards
	}
	for _, t := range []struct {
		src string
		dst *Threshold
		key string
	}{
		{b.Entry, &f.Entry, "entry"},
		{b.StayTop, &f.StayTop, "stay_top"},
		{b.StayMiddle, &f.StayMiddle, "stay_middle"},
		{b.StayBottom, &f.StayBottom, "stay_bottom"},
	} {
		if t.src == "" {
			continue
		}
		parsed, err := ParseThreshold(t.src)
		if err != nil {
			return fmt.Errorf("fantasy.%s: %w", t.key, err)
		}
		*t.dst = parsed
	}
	if b.Progressive != nil {
		f.Progressive = f.Progressive[:0:0]
		for k, cards := range b.Progressive {
			th, err := ParseThreshold(k)
			if err != nil {
				return fmt.Errorf("fantasy.progressive: %w", err)
			}
			f.Progressive = append(f.Progressive, FantasyStep{Threshold: th, Cards: cards})
		}
		slices.SortFunc(f.Progressive, func(a, b FantasyStep) int { return a.Threshold.compare(b.Threshold) })
	}
	return nil
}

func (b *agentBlock) apply(p *AgentPolicy) error {
	if b.ThinkTime != "" {
		d, err := time.ParseDuration(b.ThinkTime)
		if err != nil {
			return fmt.Errorf("agent.think_time: %w", err)
		}
		p.ThinkTime = d
	}
	if b.Fallback != "" {
		p.Fallback = Fallback(b.Fallback)
	}
	return nil
}
