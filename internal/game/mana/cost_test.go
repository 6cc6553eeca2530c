package mana

import (
	"testing"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected Cost
		err      bool
	}{
		{"", Cost{}, false},
		{"{0}", Cost{}, false},
		{"{1}", Cost{Generic: 1}, false},
		{"{F}", Cost{Forest: 1}, false},
		{"{1}{F}", Cost{Generic: 1, Forest: 1}, false},
		{"{2}{M}{M}", Cost{Generic: 2, Mountain: 2}, false},
		{"{F}{M}{W}", Cost{Forest: 1, Mountain: 1, Water: 1}, false},
		{"{f}{w}", Cost{Forest: 1, Water: 1}, false},
		{"garbage", Cost{}, true},
		{"{Q}", Cost{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseCost(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("Expected error for %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %q: %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("ParseCost(%q) = %+v, want %+v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCostString(t *testing.T) {
	tests := []struct {
		cost     Cost
		expected string
	}{
		{Cost{}, "{0}"},
		{Cost{Generic: 3}, "{3}"},
		{Cost{Generic: 1, Forest: 2}, "{1}{F}{F}"},
		{Cost{Mountain: 1, Water: 1}, "{M}{W}"},
	}
	for _, tt := range tests {
		if got := tt.cost.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestModifiedPipelineOrder(t *testing.T) {
	base := Cost{Generic: 3, Forest: 1}
	ctx := card.CostContext{CardType: card.TypeSpell}

	tests := []struct {
		name     string
		mods     []card.CostModifier
		expected int
	}{
		{
			name:     "no modifiers",
			mods:     nil,
			expected: 3,
		},
		{
			name: "increase then decrease",
			mods: []card.CostModifier{
				{Kind: card.CostDecrease, Amount: 2},
				{Kind: card.CostIncrease, Amount: 1},
			},
			expected: 2,
		},
		{
			name: "decreases clamp at zero",
			mods: []card.CostModifier{
				{Kind: card.CostDecrease, Amount: 10},
			},
			expected: 0,
		},
		{
			name: "highest set overrides arithmetic",
			mods: []card.CostModifier{
				{Kind: card.CostIncrease, Amount: 5},
				{Kind: card.CostSet, Amount: 1},
				{Kind: card.CostSet, Amount: 4},
			},
			expected: 4,
		},
		{
			name: "minimum raises after set",
			mods: []card.CostModifier{
				{Kind: card.CostSet, Amount: 1},
				{Kind: card.CostMinimum, Amount: 2},
			},
			expected: 2,
		},
		{
			name: "lowest maximum caps",
			mods: []card.CostModifier{
				{Kind: card.CostMaximum, Amount: 5},
				{Kind: card.CostMaximum, Amount: 2},
			},
			expected: 2,
		},
		{
			name: "maximum wins over minimum",
			mods: []card.CostModifier{
				{Kind: card.CostMinimum, Amount: 4},
				{Kind: card.CostMaximum, Amount: 2},
			},
			expected: 2,
		},
		{
			name: "non-applicable modifiers are skipped",
			mods: []card.CostModifier{
				{
					Kind:   card.CostDecrease,
					Amount: 2,
					AppliesTo: func(c card.CostContext) bool {
						return c.CardType == card.TypeCharacter
					},
				},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Modified(base, tt.mods, ctx)
			if got.Generic != tt.expected {
				t.Errorf("Modified generic = %d, want %d", got.Generic, tt.expected)
			}
			if got.Forest != base.Forest {
				t.Errorf("Modified touched the specific component: %+v", got)
			}
		})
	}
}

func TestModifiedOrderIndependence(t *testing.T) {
	base := Cost{Generic: 2}
	ctx := card.CostContext{}
	mods := []card.CostModifier{
		{Kind: card.CostSet, Amount: 5},
		{Kind: card.CostIncrease, Amount: 3},
		{Kind: card.CostMaximum, Amount: 4},
	}
	reversed := []card.CostModifier{mods[2], mods[1], mods[0]}

	a := Modified(base, mods, ctx)
	b := Modified(base, reversed, ctx)
	if a != b {
		t.Errorf("Modified depends on collection order: %+v vs %+v", a, b)
	}
	if a.Generic != 4 {
		t.Errorf("Modified generic = %d, want 4", a.Generic)
	}
}
