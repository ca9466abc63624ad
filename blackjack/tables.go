package blackjack

import "fmt"

// Tables holds the three basic-strategy grids for one rule configuration:
// hard totals 5-21, soft totals A,2-A,9 and pairs 2,2-A,A, each against
// dealer upcards 2-10 and ace. Built once, read-only afterwards.
type Tables struct {
	rules Rules
	hard  [22][12]Code
	soft  [12][12]Code
	pairs [12][12]Code
}

// Rules returns the configuration the tables were built for.
func (t *Tables) Rules() Rules { return t.rules }

// Hard returns the action for a hard player total (5-21) against an upcard.
func (t *Tables) Hard(total int, upcard Rank) Code { return t.hard[total][upcard] }

// Soft returns the action for a soft hand of ace plus other (2-9).
func (t *Tables) Soft(other, upcard Rank) Code { return t.soft[other][upcard] }

// Pair returns the action for a pair of the given rank against an upcard.
func (t *Tables) Pair(pair, upcard Rank) Code { return t.pairs[pair][upcard] }

// hardHand picks a representative two-card composition for a hard total;
// the only three-card row is 21, which can't be made hard with two cards.
func hardHand(total int) []Rank {
	switch {
	case total <= 11:
		return []Rank{Two, Rank(total - 2)}
	case total == 21:
		return []Rank{Ten, Six, Five}
	default:
		return []Rank{Ten, Rank(total - 10)}
	}
}

// useCompositionAverage reports whether a hard-total cell should be
// averaged over all of its two-card compositions instead of priced from
// the single representative hand.
func useCompositionAverage(rules Rules, total int) bool {
	return rules.Decks >= 1 && rules.Decks <= 2 && total >= 12 && total <= 20
}

// BuildTables computes all three strategy grids for the rules. The same
// rules always yield identical tables; no state survives between builds.
func BuildTables(rules Rules) (*Tables, error) {
	eng, err := New(rules)
	if err != nil {
		return nil, err
	}

	// A second engine without DAS distinguishes splits that are only
	// worthwhile when doubling after the split is possible (the "Ph"
	// tag). Its caches are its own; EV caches never cross rules.
	var noDAS *Engine
	if rules.DoubleAfterSplit {
		ndRules := rules
		ndRules.DoubleAfterSplit = false
		noDAS, err = New(ndRules)
		if err != nil {
			return nil, err
		}
	}

	t := &Tables{rules: rules}

	for total := 5; total <= 21; total++ {
		hand := hardHand(total)
		for _, up := range Ranks {
			var evs EVs
			if useCompositionAverage(rules, total) {
				evs, err = eng.WeightedHardEVs(total, up, true)
			} else {
				evs, err = eng.Evaluate(hand, up, false, true)
			}
			if err != nil {
				return nil, fmt.Errorf("hard %d vs %s: %w", total, up, err)
			}
			t.hard[total][up] = Decide(evs)
		}
	}

	for other := Two; other <= Nine; other++ {
		for _, up := range Ranks {
			evs, err := eng.Evaluate([]Rank{Ace, other}, up, false, true)
			if err != nil {
				return nil, fmt.Errorf("soft A,%s vs %s: %w", other, up, err)
			}
			t.soft[other][up] = Decide(evs)
		}
	}

	for _, pair := range Ranks {
		for _, up := range Ranks {
			evs, err := eng.Evaluate([]Rank{pair, pair}, up, true, true)
			if err != nil {
				return nil, fmt.Errorf("pair %s,%s vs %s: %w", pair, pair, up, err)
			}
			code := Decide(evs)
			if code == CodeSplit && noDAS != nil {
				ndEVs, err := noDAS.Evaluate([]Rank{pair, pair}, up, true, true)
				if err != nil {
					return nil, fmt.Errorf("pair %s,%s vs %s without DAS: %w", pair, pair, up, err)
				}
				// Ph means "split, else hit": only tag it when the hand
				// actually falls back to hitting without DAS. A stand
				// fallback keeps the plain split code.
				if action, _ := ndEVs.Best(); action == Hit {
					code = CodeSplitHit
				}
			}
			t.pairs[pair][up] = code
		}
	}

	return t, nil
}
