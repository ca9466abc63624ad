package blackjack

import (
	"errors"
	"fmt"
)

// Rules is an immutable description of the table rules for one analysis
// run. Every variant is a new value; engines never mutate it.
type Rules struct {
	// Decks is the number of decks in the shoe. 0 selects the
	// infinite-deck approximation.
	Decks int

	// DealerHitsSoft17 selects H17 (true) or S17 (false).
	DealerHitsSoft17 bool

	// DoubleAfterSplit allows doubling on post-split hands.
	DoubleAfterSplit bool

	// ResplitAces allows a new pair of aces formed after a split to be
	// split again. Without it, split aces receive exactly one card.
	ResplitAces bool

	// MaxSplitHands caps the number of hands a player may hold after
	// resplitting, between 2 and 4. 2 disables resplitting entirely.
	MaxSplitHands int

	// DealerPeeks means the dealer checks for blackjack under a ten or
	// ace upcard before play continues.
	DealerPeeks bool

	// LateSurrender allows giving up half the bet after the peek.
	LateSurrender bool

	// BlackjackPayout is the payout ratio for a natural (1.5 for 3:2,
	// 1.2 for 6:5).
	BlackjackPayout float64
}

// DefaultRules returns the common six-deck S17 DAS peek game paying 3:2.
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		DoubleAfterSplit: true,
		MaxSplitHands:    2,
		DealerPeeks:      true,
		BlackjackPayout:  1.5,
	}
}

// ErrInvalidRules is returned when a Rules value fails validation.
var ErrInvalidRules = errors.New("blackjack: invalid rules")

// Validate rejects rule combinations the engine cannot analyze.
func (r Rules) Validate() error {
	if r.Decks < 0 {
		return fmt.Errorf("%w: deck count %d is negative", ErrInvalidRules, r.Decks)
	}
	if r.BlackjackPayout <= 0 {
		return fmt.Errorf("%w: blackjack payout %v is not positive", ErrInvalidRules, r.BlackjackPayout)
	}
	if r.MaxSplitHands < 2 || r.MaxSplitHands > 4 {
		return fmt.Errorf("%w: max split hands %d outside 2-4", ErrInvalidRules, r.MaxSplitHands)
	}
	return nil
}

// String renders the rules in the short form used in table headings,
// e.g. "6 Deck, S17, DAS, NRSA, Peek, BJ 3:2".
func (r Rules) String() string {
	decks := "Infinite"
	if r.Decks > 0 {
		decks = fmt.Sprintf("%d", r.Decks)
	}
	soft17 := "S17"
	if r.DealerHitsSoft17 {
		soft17 = "H17"
	}
	das := "NDAS"
	if r.DoubleAfterSplit {
		das = "DAS"
	}
	rsa := "NRSA"
	if r.ResplitAces {
		rsa = "RSA"
	}
	peek := "No Peek"
	if r.DealerPeeks {
		peek = "Peek"
	}
	payout := fmt.Sprintf("BJ %g:1", r.BlackjackPayout)
	switch r.BlackjackPayout {
	case 1.5:
		payout = "BJ 3:2"
	case 1.2:
		payout = "BJ 6:5"
	}
	s := fmt.Sprintf("%s Deck, %s, %s, %s, %s, %s", decks, soft17, das, rsa, peek, payout)
	if r.LateSurrender {
		s += ", Surrender"
	}
	return s
}
