package blackjack

import (
	"errors"
	"fmt"
)

// DealerOutcomes is the probability distribution over the dealer's terminal
// result for a given upcard. The six buckets sum to 1.0; after peek
// conditioning they sum to 1.0 over the no-blackjack space.
type DealerOutcomes struct {
	Seventeen float64
	Eighteen  float64
	Nineteen  float64
	Twenty    float64
	TwentyOne float64
	Bust      float64
}

// Total returns the probability mass at a standing total of 17-21.
func (d DealerOutcomes) Total(total int) float64 {
	switch total {
	case 17:
		return d.Seventeen
	case 18:
		return d.Eighteen
	case 19:
		return d.Nineteen
	case 20:
		return d.Twenty
	case 21:
		return d.TwentyOne
	}
	return 0
}

// Sum returns the total probability mass across all buckets.
func (d DealerOutcomes) Sum() float64 {
	return d.Seventeen + d.Eighteen + d.Nineteen + d.Twenty + d.TwentyOne + d.Bust
}

func (d *DealerOutcomes) addScaled(o DealerOutcomes, w float64) {
	d.Seventeen += w * o.Seventeen
	d.Eighteen += w * o.Eighteen
	d.Nineteen += w * o.Nineteen
	d.Twenty += w * o.Twenty
	d.TwentyOne += w * o.TwentyOne
	d.Bust += w * o.Bust
}

func standingOutcome(total int) DealerOutcomes {
	var d DealerOutcomes
	switch total {
	case 17:
		d.Seventeen = 1
	case 18:
		d.Eighteen = 1
	case 19:
		d.Nineteen = 1
	case 20:
		d.Twenty = 1
	case 21:
		d.TwentyOne = 1
	default:
		d.Bust = 1
	}
	return d
}

// dealerState is the canonical memo key for a dealer hand in progress.
// Draw probabilities are fixed for the lifetime of a dealerCalc, so the
// upcard itself is irrelevant once folded into the running total.
type dealerState struct {
	total    int
	softAces int
}

// dealerCalc recursively expands dealer hands under fixed draw
// probabilities. Each instance owns its memo; instances are never shared
// across rule configurations or removal multisets.
type dealerCalc struct {
	hitsSoft17 bool
	probs      RankProbs
	memo       map[dealerState]DealerOutcomes
}

func newDealerCalc(hitsSoft17 bool, probs RankProbs) *dealerCalc {
	return &dealerCalc{
		hitsSoft17: hitsSoft17,
		probs:      probs,
		memo:       make(map[dealerState]DealerOutcomes),
	}
}

// upcardOutcomes returns the unconditioned terminal distribution for a
// dealer showing the given upcard.
func (c *dealerCalc) upcardOutcomes(upcard Rank) DealerOutcomes {
	total, soft := addCard(0, 0, upcard)
	return c.run(total, soft)
}

func (c *dealerCalc) run(total, softAces int) DealerOutcomes {
	if total > 21 {
		return standingOutcome(total)
	}
	if total >= 17 {
		// Hard 17+ always stands; soft 17 stands unless H17, and
		// anything above soft 17 stands regardless.
		if softAces == 0 || total > 17 || !c.hitsSoft17 {
			return standingOutcome(total)
		}
	}

	key := dealerState{total: total, softAces: softAces}
	if out, ok := c.memo[key]; ok {
		return out
	}

	var out DealerOutcomes
	for _, r := range Ranks {
		p := c.probs.Of(r)
		if p == 0 {
			continue
		}
		nt, ns := addCard(total, softAces, r)
		sub := c.run(nt, ns)
		out.addScaled(sub, p)
	}
	c.memo[key] = out
	return out
}

// ErrDegenerateShoe is returned when conditioning on "no dealer blackjack"
// would divide by zero, which only a pathological finite shoe can produce.
var ErrDegenerateShoe = errors.New("blackjack: probability of no dealer blackjack is zero")

// conditionNoBlackjack renormalizes a dealer distribution to exclude the
// dealer-blackjack event. The blackjack mass sits entirely in the 21
// bucket: subtract it there, then divide every bucket by 1 - P(BJ). Only
// meaningful for a ten or ace upcard.
func conditionNoBlackjack(out DealerOutcomes, upcard Rank, probs RankProbs) (DealerOutcomes, error) {
	var pBJ float64
	switch upcard {
	case Ten:
		pBJ = probs.Of(Ace)
	case Ace:
		pBJ = probs.Of(Ten)
	default:
		return out, nil
	}
	pNoBJ := 1 - pBJ
	if pNoBJ <= 0 {
		return DealerOutcomes{}, fmt.Errorf("%w: upcard %s", ErrDegenerateShoe, upcard)
	}
	return DealerOutcomes{
		Seventeen: out.Seventeen / pNoBJ,
		Eighteen:  out.Eighteen / pNoBJ,
		Nineteen:  out.Nineteen / pNoBJ,
		Twenty:    out.Twenty / pNoBJ,
		TwentyOne: (out.TwentyOne - pBJ) / pNoBJ,
		Bust:      out.Bust / pNoBJ,
	}, nil
}
