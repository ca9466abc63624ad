package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-solver/blackjack"
	"github.com/lox/blackjack-solver/internal/render"
)

type CLI struct {
	Decks         int     `short:"d" default:"6" help:"Number of decks in the shoe (0 for the infinite-deck approximation)"`
	H17           bool    `help:"Dealer hits soft 17"`
	NoDas         bool    `help:"Disallow doubling after a split"`
	Rsa           bool    `help:"Allow resplitting aces"`
	MaxSplitHands int     `default:"2" help:"Maximum hands after resplitting (2-4)"`
	NoPeek        bool    `help:"Dealer does not peek for blackjack"`
	Surrender     bool    `help:"Allow late surrender"`
	Payout        float64 `default:"1.5" help:"Blackjack payout ratio (1.5 for 3:2, 1.2 for 6:5)"`
	Plain         bool    `help:"Disable colored output"`
	NoEdge        bool    `help:"Skip the house edge computation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjstrategy"),
		kong.Description("Compute the optimal blackjack strategy tables and house edge for a rule set."))

	rules := blackjack.Rules{
		Decks:            cli.Decks,
		DealerHitsSoft17: cli.H17,
		DoubleAfterSplit: !cli.NoDas,
		ResplitAces:      cli.Rsa,
		MaxSplitHands:    cli.MaxSplitHands,
		DealerPeeks:      !cli.NoPeek,
		LateSurrender:    cli.Surrender,
		BlackjackPayout:  cli.Payout,
	}
	if err := rules.Validate(); err != nil {
		log.Fatal("Invalid rules", "error", err)
	}

	start := time.Now()
	tables, err := blackjack.BuildTables(rules)
	if err != nil {
		log.Fatal("Failed to build tables", "error", err)
	}

	r := render.Renderer{Styled: !cli.Plain}
	fmt.Fprint(os.Stdout, r.Tables(tables))

	if !cli.NoEdge {
		edge, err := blackjack.HouseEdge(rules)
		if err != nil {
			log.Fatal("Failed to compute house edge", "error", err)
		}
		fmt.Printf("\nHouse edge: %.4f%%\n", edge)
	}
	fmt.Printf("\ncomputed in %v\n", time.Since(start).Truncate(time.Millisecond))

	ctx.Exit(0)
}
