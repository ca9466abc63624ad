package blackjack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infiniteEngine(t *testing.T, mutate func(*Rules)) *Engine {
	t.Helper()
	rules := DefaultRules()
	rules.Decks = 0
	if mutate != nil {
		mutate(&rules)
	}
	eng, err := New(rules)
	require.NoError(t, err)
	return eng
}

func TestStandEVBounds(t *testing.T) {
	eng := infiniteEngine(t, nil)
	for total := 4; total <= 21; total++ {
		for _, up := range Ranks {
			ev := eng.standEV(total, eng.DealerOutcomes(up))
			assert.GreaterOrEqual(t, ev, -1.0, "total=%d upcard=%s", total, up)
			assert.LessOrEqual(t, ev, 1.0, "total=%d upcard=%s", total, up)
		}
	}
}

func TestHitTwentyOneAlwaysBusts(t *testing.T) {
	eng := infiniteEngine(t, nil)
	for _, up := range Ranks {
		assert.InDelta(t, -1.0, eng.hitEV(21, 0, up), 1e-12, "upcard=%s", up)
	}
}

func TestEvaluateRejectsInvalidHands(t *testing.T) {
	eng := infiniteEngine(t, nil)

	_, err := eng.Evaluate(nil, Six, false, false)
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = eng.Evaluate([]Rank{Ten, Nine, Five}, Six, false, false)
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestSurrenderEVUnderPeek(t *testing.T) {
	for _, decks := range []int{0, 6} {
		eng := infiniteEngine(t, func(r *Rules) {
			r.Decks = decks
			r.LateSurrender = true
			r.DealerPeeks = true
		})
		for _, up := range Ranks {
			evs, err := eng.Evaluate([]Rank{Ten, Six}, up, false, true)
			require.NoError(t, err)
			require.Contains(t, evs, Surrender)
			assert.Equal(t, -0.5, evs[Surrender], "decks=%d upcard=%s", decks, up)
		}
	}
}

func TestSurrenderEVWithoutPeek(t *testing.T) {
	eng := infiniteEngine(t, func(r *Rules) {
		r.LateSurrender = true
		r.DealerPeeks = false
	})

	evs, err := eng.Evaluate([]Rank{Ten, Six}, Six, false, true)
	require.NoError(t, err)
	assert.Equal(t, -0.5, evs[Surrender])

	// A concealed blackjack voids the surrender and takes the whole bet.
	pBJ := 16.0 / 52
	evs, err = eng.Evaluate([]Rank{Ten, Six}, Ace, false, true)
	require.NoError(t, err)
	assert.InDelta(t, pBJ*(-1)+(1-pBJ)*(-0.5), evs[Surrender], 1e-12)
}

func TestSurrenderOnlyAddsOptions(t *testing.T) {
	base := DefaultRules()
	withSur := base
	withSur.LateSurrender = true

	engBase, err := New(base)
	require.NoError(t, err)
	engSur, err := New(withSur)
	require.NoError(t, err)

	hands := [][]Rank{{Ten, Six}, {Nine, Seven}, {Ace, Six}, {Eight, Eight}}
	for _, hand := range hands {
		for _, up := range Ranks {
			evsBase, err := engBase.Evaluate(hand, up, true, true)
			require.NoError(t, err)
			evsSur, err := engSur.Evaluate(hand, up, true, true)
			require.NoError(t, err)

			_, bestBase := evsBase.Best()
			_, bestSur := evsSur.Best()
			assert.GreaterOrEqual(t, bestSur, bestBase-1e-12,
				"hand=%v upcard=%s", hand, up)
		}
	}
}

func TestSplitEVRequiresPair(t *testing.T) {
	eng := infiniteEngine(t, nil)
	_, err := eng.SplitEV([]Rank{Ten, Nine}, Six)
	assert.ErrorIs(t, err, ErrNotPair)
}

func TestSplitDASNeverHurts(t *testing.T) {
	for _, decks := range []int{0, 6} {
		das := DefaultRules()
		das.Decks = decks
		noDAS := das
		noDAS.DoubleAfterSplit = false

		engDAS, err := New(das)
		require.NoError(t, err)
		engNoDAS, err := New(noDAS)
		require.NoError(t, err)

		for _, pair := range []Rank{Two, Four, Six, Eight, Nine} {
			for _, up := range Ranks {
				withDAS, err := engDAS.SplitEV([]Rank{pair, pair}, up)
				require.NoError(t, err)
				without, err := engNoDAS.SplitEV([]Rank{pair, pair}, up)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, withDAS, without-1e-12,
					"decks=%d pair=%s upcard=%s", decks, pair, up)
			}
		}
	}
}

func TestResplitNeverHurts(t *testing.T) {
	capped := DefaultRules()
	resplit := capped
	resplit.MaxSplitHands = 4

	engCapped, err := New(capped)
	require.NoError(t, err)
	engResplit, err := New(resplit)
	require.NoError(t, err)

	for _, pair := range []Rank{Two, Six, Eight, Nine} {
		for _, up := range Ranks {
			two, err := engCapped.SplitEV([]Rank{pair, pair}, up)
			require.NoError(t, err)
			four, err := engResplit.SplitEV([]Rank{pair, pair}, up)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, four, two-1e-12, "pair=%s upcard=%s", pair, up)
		}
	}
}

func TestResplitAcesNeverHurts(t *testing.T) {
	base := DefaultRules()
	base.MaxSplitHands = 4
	rsa := base
	rsa.ResplitAces = true

	engBase, err := New(base)
	require.NoError(t, err)
	engRSA, err := New(rsa)
	require.NoError(t, err)

	for _, up := range Ranks {
		without, err := engBase.SplitEV([]Rank{Ace, Ace}, up)
		require.NoError(t, err)
		with, err := engRSA.SplitEV([]Rank{Ace, Ace}, up)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, with, without-1e-12, "upcard=%s", up)
	}
}

func TestEVBoundsAcrossActions(t *testing.T) {
	eng := infiniteEngine(t, func(r *Rules) { r.LateSurrender = true })
	hands := [][]Rank{{Two, Three}, {Ten, Six}, {Ace, Seven}, {Ace, Ace}, {Ten, Ten}}
	for _, hand := range hands {
		for _, up := range Ranks {
			evs, err := eng.Evaluate(hand, up, true, true)
			require.NoError(t, err)
			for action, ev := range evs {
				// Split and double put two bets in play.
				assert.GreaterOrEqual(t, ev, -2.0, "%s %v vs %s", action, hand, up)
				assert.LessOrEqual(t, ev, 2.0, "%s %v vs %s", action, hand, up)
			}
		}
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	rules := DefaultRules()
	a, err := New(rules)
	require.NoError(t, err)
	b, err := New(rules)
	require.NoError(t, err)

	evsA, err := a.Evaluate([]Rank{Ten, Six}, Ten, false, true)
	require.NoError(t, err)
	evsB, err := b.Evaluate([]Rank{Ten, Six}, Ten, false, true)
	require.NoError(t, err)

	for action, ev := range evsA {
		assert.True(t, math.Abs(ev-evsB[action]) == 0, "action %s differs", action)
	}
}
