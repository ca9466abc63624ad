package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseEdgeSixDeckLandsInHistoricalBand(t *testing.T) {
	edge, err := HouseEdge(DefaultRules())
	require.NoError(t, err)

	// Six decks, S17, DAS, no resplit, 3:2, peek has sat around half a
	// percent for decades.
	assert.Greater(t, edge, 0.3, "edge %.4f%% below the historical band", edge)
	assert.Less(t, edge, 0.6, "edge %.4f%% above the historical band", edge)
}

func TestHouseEdgeSixFivePayoutIsWorse(t *testing.T) {
	threeTwo := DefaultRules()
	sixFive := threeTwo
	sixFive.BlackjackPayout = 1.2

	edge32, err := HouseEdge(threeTwo)
	require.NoError(t, err)
	edge65, err := HouseEdge(sixFive)
	require.NoError(t, err)

	assert.Greater(t, edge65, edge32)
	// The payout cut costs the player more than a full percent.
	assert.Greater(t, edge65-edge32, 1.0)
}

func TestHouseEdgeSurrenderNeverRaisesIt(t *testing.T) {
	base := DefaultRules()
	withSur := base
	withSur.LateSurrender = true

	edgeBase, err := HouseEdge(base)
	require.NoError(t, err)
	edgeSur, err := HouseEdge(withSur)
	require.NoError(t, err)

	assert.LessOrEqual(t, edgeSur, edgeBase+1e-9)
}

func TestHouseEdgeInfiniteDeck(t *testing.T) {
	rules := DefaultRules()
	rules.Decks = 0

	edge, err := HouseEdge(rules)
	require.NoError(t, err)
	// The infinite-deck approximation stays near the finite-shoe number.
	assert.Greater(t, edge, 0.2)
	assert.Less(t, edge, 0.8)
}

func TestHouseEdgeDeterministic(t *testing.T) {
	rules := DefaultRules()
	first, err := HouseEdge(rules)
	require.NoError(t, err)
	second, err := HouseEdge(rules)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHouseEdgeRejectsInvalidRules(t *testing.T) {
	rules := DefaultRules()
	rules.BlackjackPayout = 0
	_, err := HouseEdge(rules)
	require.ErrorIs(t, err, ErrInvalidRules)
}
