package blackjack

// HouseEdge integrates optimal-play EV over all 1,000 distinct
// (card1, card2, upcard) rank triples, weighted by their exact joint draw
// probabilities, and returns the casino's advantage as a percentage.
//
// The engine is always built with the peek flag forced on so every EV it
// produces is conditioned on "no dealer blackjack"; the dealer-blackjack
// event is folded back in here with its unconditioned probability. Pricing
// in the mixed space instead would double-count the blackjack mass.
func HouseEdge(rules Rules) (float64, error) {
	if err := rules.Validate(); err != nil {
		return 0, err
	}
	evRules := rules
	evRules.DealerPeeks = true
	eng, err := New(evRules)
	if err != nil {
		return 0, err
	}

	shoe := NewShoe(rules.Decks)
	base := shoe.BaseProbs()

	var expectedReturn float64
	for _, c1 := range Ranks {
		p1 := base.Of(c1)
		afterFirst, err := shoe.Probs(countsOf(c1))
		if err != nil {
			return 0, err
		}
		for _, c2 := range Ranks {
			p2 := afterFirst.Of(c2)
			if p2 == 0 {
				continue
			}
			afterSecond, err := shoe.Probs(countsOf(c1, c2))
			if err != nil {
				return 0, err
			}
			for _, up := range Ranks {
				p3 := afterSecond.Of(up)
				if p3 == 0 {
					continue
				}
				ev, err := startingHandEV(eng, rules, shoe, c1, c2, up)
				if err != nil {
					return 0, err
				}
				expectedReturn += p1 * p2 * p3 * ev
			}
		}
	}
	return -100 * expectedReturn, nil
}

// startingHandEV prices one dealt starting hand in the unconditioned
// space. A player natural pushes against a dealer natural and pays the
// bonus otherwise; any other hand loses its bet to a dealer natural and
// plays the conditioned best action the rest of the time.
func startingHandEV(eng *Engine, rules Rules, shoe Shoe, c1, c2, up Rank) (float64, error) {
	dealt, err := shoe.Probs(countsOf(c1, c2, up))
	if err != nil {
		return 0, err
	}
	var pDealerBJ float64
	switch up {
	case Ten:
		pDealerBJ = dealt.Of(Ace)
	case Ace:
		pDealerBJ = dealt.Of(Ten)
	}

	cards := []Rank{c1, c2}
	if IsBlackjack(cards) {
		return (1 - pDealerBJ) * rules.BlackjackPayout, nil
	}

	evs, err := eng.Evaluate(cards, up, true, true)
	if err != nil {
		return 0, err
	}
	_, best := evs.Best()
	return (1-pDealerBJ)*best + pDealerBJ*(-1), nil
}
