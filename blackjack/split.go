package blackjack

import (
	"errors"
	"math"
)

// ErrNotPair is returned when a split EV is requested for a hand that is
// not a two-card pair.
var ErrNotPair = errors.New("blackjack: split requires a two-card pair")

// SplitEV prices splitting the given pair against an upcard, including
// resplits up to the configured hand cap.
func (e *Engine) SplitEV(cards []Rank, upcard Rank) (float64, error) {
	if !IsPair(cards) {
		return 0, ErrNotPair
	}
	return e.splitEV(cards[0], upcard, countsOf(cards[0], cards[1], upcard), 2)
}

// splitEV computes the expectation of holding `hands` hands after splitting
// a pair, per unit bet on the original hand. Each of the two fresh hands
// draws one card: if that card re-pairs the hand and the cap allows it, the
// better of playing the pair and splitting again is taken. The removal
// vector is threaded through every branch so finite-deck probabilities stay
// consistent across the simultaneously played hands. Termination comes from
// the hand cap.
func (e *Engine) splitEV(pair, upcard Rank, removed CardCounts, hands int) (float64, error) {
	probs, err := e.shoe.Probs(removed)
	if err != nil {
		return 0, err
	}
	var ev float64
	for _, r := range Ranks {
		p := probs.Of(r)
		if p == 0 {
			continue
		}
		afterDraw := removed.Added(r)
		handEV, err := e.postSplitHandEV(pair, r, upcard, afterDraw)
		if err != nil {
			return 0, err
		}
		if r == pair && hands < e.rules.MaxSplitHands && (pair != Ace || e.rules.ResplitAces) {
			again, err := e.splitEV(pair, upcard, afterDraw, hands+1)
			if err != nil {
				return 0, err
			}
			handEV = math.Max(handEV, again)
		}
		ev += p * handEV
	}
	return 2 * ev, nil
}

// postSplitHandEV prices one post-split hand (pair, drawn) played out.
// Split aces stand on their single card unless resplitting aces is
// allowed; otherwise the hand plays the best of stand, hit and, when the
// rules permit doubling after a split, double.
func (e *Engine) postSplitHandEV(pair, drawn, upcard Rank, removed CardCounts) (float64, error) {
	total, softAces := addCard(0, 0, pair)
	total, softAces = addCard(total, softAces, drawn)

	dealer, err := e.dealerOutcomes(upcard, removed)
	if err != nil {
		return 0, err
	}
	stand := e.standEV(total, dealer)
	if pair == Ace && !e.rules.ResplitAces {
		return stand, nil
	}
	best := math.Max(stand, e.hitEV(total, softAces, upcard))
	if e.rules.DoubleAfterSplit {
		best = math.Max(best, e.doubleEV(total, softAces, upcard))
	}
	return best, nil
}
