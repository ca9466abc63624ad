// Package blackjack computes exact expected values for blackjack decisions
// under a configurable rule set, and derives optimal-action strategy tables
// and an aggregate house edge from them.
package blackjack

import (
	"errors"
	"fmt"
)

// Rank is a distinct card value. Face cards collapse into Ten, and Ace is
// carried as 11 until ace reduction converts it to 1 to avoid busting.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Ace // 11
)

// Ranks enumerates the ten distinct card values in draw order.
var Ranks = [10]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Ace}

// String returns the rank label used in tables ("2".."10", "A").
func (r Rank) String() string {
	if r == Ace {
		return "A"
	}
	return fmt.Sprintf("%d", int(r))
}

// copiesPerDeck returns how many cards of this rank a single deck holds.
// Ten subsumes 10/J/Q/K.
func (r Rank) copiesPerDeck() int {
	if r == Ten {
		return 16
	}
	return 4
}

// CardCounts is a removed-card multiset, indexed by Rank. Only per-rank
// counts matter; the zero value means nothing has left the shoe. It is a
// comparable value type so it can key memoization maps directly.
type CardCounts [12]int

// Added returns a copy with one more card of the given rank removed.
func (c CardCounts) Added(r Rank) CardCounts {
	c[r]++
	return c
}

// countsOf builds a removed-card multiset from dealt cards.
func countsOf(cards ...Rank) CardCounts {
	var c CardCounts
	for _, r := range cards {
		c[r]++
	}
	return c
}

// RankProbs maps each rank to its draw probability, indexed by Rank.
type RankProbs [12]float64

// Of returns the probability of drawing the given rank.
func (p RankProbs) Of(r Rank) float64 { return p[r] }

// ErrRankExhausted is returned when a removed-card multiset claims more
// copies of a rank than the shoe ever held.
var ErrRankExhausted = errors.New("blackjack: rank exhausted in shoe")

// ErrEmptyShoe is returned when no cards remain to draw from.
var ErrEmptyShoe = errors.New("blackjack: no cards remaining in shoe")

// Shoe models draw probabilities for a shoe of Decks decks. Decks == 0 is
// the infinite-deck approximation, where removal has no effect.
type Shoe struct {
	Decks int
}

// NewShoe returns a shoe for the given deck count.
func NewShoe(decks int) Shoe { return Shoe{Decks: decks} }

// BaseProbs returns rank probabilities for an untouched shoe. For any deck
// count the ratios are 4/52 per non-ten rank and 16/52 for tens.
func (s Shoe) BaseProbs() RankProbs {
	var p RankProbs
	for _, r := range Ranks {
		p[r] = float64(r.copiesPerDeck()) / 52.0
	}
	return p
}

// Remaining returns how many copies of rank r are left after the removals.
// Infinite shoes report a sentinel of -1 since depletion is not modeled.
func (s Shoe) Remaining(r Rank, removed CardCounts) int {
	if s.Decks == 0 {
		return -1
	}
	return r.copiesPerDeck()*s.Decks - removed[r]
}

// Probs returns rank probabilities adjusted for the removed cards. Callers
// must never remove more copies of a rank than exist; that is surfaced as
// ErrRankExhausted rather than a silent negative probability or NaN.
func (s Shoe) Probs(removed CardCounts) (RankProbs, error) {
	if s.Decks == 0 {
		return s.BaseProbs(), nil
	}
	total := 52 * s.Decks
	for _, r := range Ranks {
		total -= removed[r]
	}
	if total <= 0 {
		return RankProbs{}, ErrEmptyShoe
	}
	var p RankProbs
	for _, r := range Ranks {
		left := s.Remaining(r, removed)
		if left < 0 {
			return RankProbs{}, fmt.Errorf("%w: %s removed %d times from %d-deck shoe",
				ErrRankExhausted, r, removed[r], s.Decks)
		}
		p[r] = float64(left) / float64(total)
	}
	return p, nil
}

// HandTotal computes the best total for a hand and whether it is soft (an
// ace still counted as 11). Aces reduce from 11 to 1 while the hand busts.
func HandTotal(cards []Rank) (total int, soft bool) {
	aces := 0
	for _, r := range cards {
		total += int(r)
		if r == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0 && total <= 21
}

// addCard advances a (total, softAces) state by one drawn rank, reducing
// aces as needed. The canonical state never exceeds 21 while soft aces
// remain to convert.
func addCard(total, softAces int, r Rank) (int, int) {
	if r == Ace {
		total += 11
		softAces++
	} else {
		total += int(r)
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

// IsBlackjack reports whether the hand is a two-card natural 21.
func IsBlackjack(cards []Rank) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandTotal(cards)
	return total == 21
}

// IsPair reports whether the hand is a splittable two-card pair.
func IsPair(cards []Rank) bool {
	return len(cards) == 2 && cards[0] == cards[1]
}
