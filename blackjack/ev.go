package blackjack

import (
	"errors"
	"fmt"
	"math"
)

// Action is a player decision the engine can price.
type Action string

const (
	Stand     Action = "stand"
	Hit       Action = "hit"
	Double    Action = "double"
	Split     Action = "split"
	Surrender Action = "surrender"
)

// actionOrder fixes the iteration order for Best so ties always resolve to
// the earliest action, keeping table generation deterministic.
var actionOrder = [...]Action{Stand, Hit, Double, Split, Surrender}

// EVs maps each available action to its expectation per unit bet. Actions
// that are not available for the hand are simply absent.
type EVs map[Action]float64

// Best returns the highest-EV action. Ties resolve in the fixed order
// stand, hit, double, split, surrender.
func (e EVs) Best() (Action, float64) {
	var best Action
	bestEV := math.Inf(-1)
	for _, a := range actionOrder {
		ev, ok := e[a]
		if !ok {
			continue
		}
		if ev > bestEV {
			best, bestEV = a, ev
		}
	}
	return best, bestEV
}

// ErrInvalidHand is returned for hands the engine cannot evaluate, such as
// a busted hand or an empty one.
var ErrInvalidHand = errors.New("blackjack: invalid hand")

// handKey identifies a canonical player state for the memoized
// infinite-deck recursion. A canonical total never exceeds 21.
type handKey struct {
	total    int
	softAces int
	upcard   Rank
}

// compKey identifies a finite-deck dealer distribution by upcard and the
// removed-card count vector; card order is irrelevant.
type compKey struct {
	upcard  Rank
	removed CardCounts
}

// Engine prices player actions for one rule configuration. All memoization
// caches are owned by the instance; engines must never be shared across
// rule configurations, and a fresh engine always reproduces the same
// numbers.
type Engine struct {
	rules Rules
	shoe  Shoe
	base  RankProbs

	// dealer holds the per-upcard terminal distribution under base draw
	// probabilities, peek-conditioned when the rules call for it.
	dealer [12]DealerOutcomes

	hitMemo    map[handKey]float64
	doubleMemo map[handKey]float64
	compDealer map[compKey]DealerOutcomes
}

// New builds an engine for the given rules, precomputing the per-upcard
// dealer distributions.
func New(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		rules:      rules,
		shoe:       NewShoe(rules.Decks),
		hitMemo:    make(map[handKey]float64),
		doubleMemo: make(map[handKey]float64),
		compDealer: make(map[compKey]DealerOutcomes),
	}
	e.base = e.shoe.BaseProbs()

	dc := newDealerCalc(rules.DealerHitsSoft17, e.base)
	for _, up := range Ranks {
		out := dc.upcardOutcomes(up)
		if rules.DealerPeeks {
			var err error
			out, err = conditionNoBlackjack(out, up, e.base)
			if err != nil {
				return nil, err
			}
		}
		e.dealer[up] = out
	}
	return e, nil
}

// Rules returns the rule configuration the engine was built for.
func (e *Engine) Rules() Rules { return e.rules }

// DealerOutcomes returns the precomputed terminal distribution for an
// upcard under base draw probabilities.
func (e *Engine) DealerOutcomes(upcard Rank) DealerOutcomes {
	return e.dealer[upcard]
}

// Evaluate prices every available action for a player hand against a
// dealer upcard. With a finite shoe the first draw and the dealer
// distribution use composition-adjusted probabilities; deeper draws reuse
// the memoized engine (see hitComposition).
func (e *Engine) Evaluate(cards []Rank, upcard Rank, canSplit, canDouble bool) (EVs, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidHand)
	}
	total, soft := HandTotal(cards)
	if total > 21 {
		return nil, fmt.Errorf("%w: total %d", ErrInvalidHand, total)
	}
	softAces := 0
	if soft {
		softAces = 1
	}

	if e.shoe.Decks > 0 {
		return e.evaluateComposition(cards, total, softAces, upcard, canSplit, canDouble)
	}

	evs := EVs{
		Stand: e.standEV(total, e.dealer[upcard]),
		Hit:   e.hitEV(total, softAces, upcard),
	}
	if canDouble && len(cards) == 2 {
		evs[Double] = e.doubleEV(total, softAces, upcard)
	}
	if canSplit && IsPair(cards) {
		sv, err := e.splitEV(cards[0], upcard, countsOf(cards[0], cards[1], upcard), 2)
		if err != nil {
			return nil, err
		}
		evs[Split] = sv
	}
	if e.rules.LateSurrender && len(cards) == 2 {
		evs[Surrender] = e.surrenderEV(upcard, e.base)
	}
	return evs, nil
}

// standEV compares the player's standing total against the dealer
// distribution: dealer busts win, lower dealer totals win, higher lose,
// pushes contribute nothing.
func (e *Engine) standEV(playerTotal int, dealer DealerOutcomes) float64 {
	ev := dealer.Bust
	for t := 17; t <= 21; t++ {
		p := dealer.Total(t)
		if playerTotal > t {
			ev += p
		} else if playerTotal < t {
			ev -= p
		}
	}
	return ev
}

// hitEV is the memoized infinite-deck expectation of taking one more card
// and then playing optimally. Every draw strictly raises the hard value of
// the hand, so the recursion is bounded by total 21.
func (e *Engine) hitEV(total, softAces int, upcard Rank) float64 {
	key := handKey{total: total, softAces: softAces, upcard: upcard}
	if ev, ok := e.hitMemo[key]; ok {
		return ev
	}
	var ev float64
	for _, r := range Ranks {
		p := e.base.Of(r)
		nt, ns := addCard(total, softAces, r)
		if nt > 21 {
			ev -= p
			continue
		}
		stand := e.standEV(nt, e.dealer[upcard])
		ev += p * math.Max(stand, e.hitEV(nt, ns, upcard))
	}
	e.hitMemo[key] = ev
	return ev
}

// doubleEV prices doubling down: the stake doubles, exactly one card is
// drawn, and the hand stands (or busts) afterwards.
func (e *Engine) doubleEV(total, softAces int, upcard Rank) float64 {
	key := handKey{total: total, softAces: softAces, upcard: upcard}
	if ev, ok := e.doubleMemo[key]; ok {
		return ev
	}
	var ev float64
	for _, r := range Ranks {
		p := e.base.Of(r)
		nt, _ := addCard(total, softAces, r)
		if nt > 21 {
			ev -= 2 * p
			continue
		}
		ev += 2 * p * e.standEV(nt, e.dealer[upcard])
	}
	e.doubleMemo[key] = ev
	return ev
}

// surrenderEV prices giving up half the bet. In a peek game the dealer has
// already shown no blackjack, so it is exactly -0.5. Without a peek, a ten
// or ace upcard may still conceal a blackjack that voids the surrender and
// takes the full bet.
func (e *Engine) surrenderEV(upcard Rank, probs RankProbs) float64 {
	if e.rules.DealerPeeks {
		return -0.5
	}
	var pBJ float64
	switch upcard {
	case Ten:
		pBJ = probs.Of(Ace)
	case Ace:
		pBJ = probs.Of(Ten)
	default:
		return -0.5
	}
	return pBJ*(-1) + (1-pBJ)*(-0.5)
}

// dealerOutcomes returns the (possibly peek-conditioned) dealer
// distribution for an upcard given the cards already removed from the
// shoe. Finite-deck results are memoized by (upcard, removal vector).
func (e *Engine) dealerOutcomes(upcard Rank, removed CardCounts) (DealerOutcomes, error) {
	if e.shoe.Decks == 0 {
		return e.dealer[upcard], nil
	}
	key := compKey{upcard: upcard, removed: removed}
	if out, ok := e.compDealer[key]; ok {
		return out, nil
	}
	adj, err := e.shoe.Probs(removed)
	if err != nil {
		return DealerOutcomes{}, err
	}
	out := newDealerCalc(e.rules.DealerHitsSoft17, adj).upcardOutcomes(upcard)
	if e.rules.DealerPeeks {
		out, err = conditionNoBlackjack(out, upcard, adj)
		if err != nil {
			return DealerOutcomes{}, err
		}
	}
	e.compDealer[key] = out
	return out, nil
}

// evaluateComposition prices actions with draw probabilities adjusted for
// the player's cards and the upcard. Only the first draw after the dealt
// hand uses exact removal-adjusted probabilities; second and later draws
// fall back to the memoized engine, so results beyond the first draw are
// an approximation of full composition dependence.
func (e *Engine) evaluateComposition(cards []Rank, total, softAces int, upcard Rank, canSplit, canDouble bool) (EVs, error) {
	removed := countsOf(cards...).Added(upcard)
	adj, err := e.shoe.Probs(removed)
	if err != nil {
		return nil, err
	}
	dealer, err := e.dealerOutcomes(upcard, removed)
	if err != nil {
		return nil, err
	}

	evs := EVs{
		Stand: e.standEV(total, dealer),
		Hit:   e.hitComposition(total, softAces, upcard, adj, dealer),
	}
	if canDouble && len(cards) == 2 {
		evs[Double] = e.doubleComposition(total, softAces, adj, dealer)
	}
	if canSplit && IsPair(cards) {
		sv, err := e.splitEV(cards[0], upcard, removed, 2)
		if err != nil {
			return nil, err
		}
		evs[Split] = sv
	}
	if e.rules.LateSurrender && len(cards) == 2 {
		evs[Surrender] = e.surrenderEV(upcard, adj)
	}
	return evs, nil
}

func (e *Engine) hitComposition(total, softAces int, upcard Rank, adj RankProbs, dealer DealerOutcomes) float64 {
	var ev float64
	for _, r := range Ranks {
		p := adj.Of(r)
		if p == 0 {
			continue
		}
		nt, ns := addCard(total, softAces, r)
		if nt > 21 {
			ev -= p
			continue
		}
		stand := e.standEV(nt, dealer)
		ev += p * math.Max(stand, e.hitEV(nt, ns, upcard))
	}
	return ev
}

func (e *Engine) doubleComposition(total, softAces int, adj RankProbs, dealer DealerOutcomes) float64 {
	var ev float64
	for _, r := range Ranks {
		p := adj.Of(r)
		if p == 0 {
			continue
		}
		nt, _ := addCard(total, softAces, r)
		if nt > 21 {
			ev -= 2 * p
			continue
		}
		ev += 2 * p * e.standEV(nt, dealer)
	}
	return ev
}
