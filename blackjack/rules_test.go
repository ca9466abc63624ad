package blackjack

import (
	"errors"
	"testing"
)

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Rules)
		wantErr bool
	}{
		{"defaults are valid", nil, false},
		{"infinite deck is valid", func(r *Rules) { r.Decks = 0 }, false},
		{"negative decks", func(r *Rules) { r.Decks = -1 }, true},
		{"zero payout", func(r *Rules) { r.BlackjackPayout = 0 }, true},
		{"negative payout", func(r *Rules) { r.BlackjackPayout = -1.5 }, true},
		{"one split hand", func(r *Rules) { r.MaxSplitHands = 1 }, true},
		{"five split hands", func(r *Rules) { r.MaxSplitHands = 5 }, true},
		{"four split hands", func(r *Rules) { r.MaxSplitHands = 4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			if tt.mutate != nil {
				tt.mutate(&rules)
			}
			err := rules.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRules) {
				t.Errorf("error %v is not ErrInvalidRules", err)
			}
		})
	}
}

func TestRulesString(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
		want   string
	}{
		{"defaults", nil, "6 Deck, S17, DAS, NRSA, Peek, BJ 3:2"},
		{"infinite h17", func(r *Rules) { r.Decks = 0; r.DealerHitsSoft17 = true },
			"Infinite Deck, H17, DAS, NRSA, Peek, BJ 3:2"},
		{"six five no peek", func(r *Rules) { r.BlackjackPayout = 1.2; r.DealerPeeks = false },
			"6 Deck, S17, DAS, NRSA, No Peek, BJ 6:5"},
		{"surrender", func(r *Rules) { r.LateSurrender = true },
			"6 Deck, S17, DAS, NRSA, Peek, BJ 3:2, Surrender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			if tt.mutate != nil {
				tt.mutate(&rules)
			}
			if got := rules.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
