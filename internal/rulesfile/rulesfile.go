// Package rulesfile loads named rule configurations from HCL files, so a
// batch run can analyze a curated set of games instead of the full grid.
//
// Example:
//
//	ruleset "vegas-6d" {
//	  decks           = 6
//	  hit_soft_17     = true
//	  late_surrender  = true
//	}
package rulesfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-solver/blackjack"
)

// Ruleset is one named rule configuration block. Pointer fields default to
// the common game (DAS, peek, 3:2) when the attribute is omitted.
type Ruleset struct {
	Name             string   `hcl:"name,label"`
	Decks            *int     `hcl:"decks,optional"`
	HitSoft17        bool     `hcl:"hit_soft_17,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	ResplitAces      bool     `hcl:"resplit_aces,optional"`
	MaxSplitHands    *int     `hcl:"max_split_hands,optional"`
	DealerPeeks      *bool    `hcl:"dealer_peeks,optional"`
	LateSurrender    bool     `hcl:"late_surrender,optional"`
	BlackjackPayout  *float64 `hcl:"blackjack_pays,optional"`
}

type file struct {
	Rulesets []Ruleset `hcl:"ruleset,block"`
}

// NamedRules pairs a ruleset label with the resolved rule configuration.
type NamedRules struct {
	Name  string
	Rules blackjack.Rules
}

// Load parses an HCL rules file and resolves every block against the
// defaults, validating each resulting configuration.
func Load(filename string) ([]NamedRules, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var cfg file
	if diags := gohcl.DecodeBody(f.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}
	if len(cfg.Rulesets) == 0 {
		return nil, fmt.Errorf("%s: no ruleset blocks", filename)
	}

	out := make([]NamedRules, 0, len(cfg.Rulesets))
	for _, rs := range cfg.Rulesets {
		rules := rs.resolve()
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("ruleset %q: %w", rs.Name, err)
		}
		out = append(out, NamedRules{Name: rs.Name, Rules: rules})
	}
	return out, nil
}

func (rs Ruleset) resolve() blackjack.Rules {
	rules := blackjack.DefaultRules()
	if rs.Decks != nil {
		rules.Decks = *rs.Decks
	}
	rules.DealerHitsSoft17 = rs.HitSoft17
	if rs.DoubleAfterSplit != nil {
		rules.DoubleAfterSplit = *rs.DoubleAfterSplit
	}
	rules.ResplitAces = rs.ResplitAces
	if rs.MaxSplitHands != nil {
		rules.MaxSplitHands = *rs.MaxSplitHands
	}
	if rs.DealerPeeks != nil {
		rules.DealerPeeks = *rs.DealerPeeks
	}
	rules.LateSurrender = rs.LateSurrender
	if rs.BlackjackPayout != nil {
		rules.BlackjackPayout = *rs.BlackjackPayout
	}
	return rules
}
