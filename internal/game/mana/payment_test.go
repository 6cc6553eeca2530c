package mana

import (
	"errors"
	"testing"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

func TestPlanPaymentSpecificFirst(t *testing.T) {
	cost := Cost{Generic: 1, Forest: 2}
	pool := Pool{ReadyOrbs: 3, Terrain: card.Statistics{Forest: 2}}

	plan, err := PlanPayment(cost, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.FromTerrain.Forest != 2 {
		t.Errorf("forest from terrain = %d, want 2", plan.FromTerrain.Forest)
	}
	if plan.OrbsToUse != 1 {
		t.Errorf("orbs = %d, want 1", plan.OrbsToUse)
	}
}

func TestPlanPaymentSpecificShortfallFallsBackToOrbs(t *testing.T) {
	cost := Cost{Water: 2}
	pool := Pool{ReadyOrbs: 2, Terrain: card.Statistics{Water: 1}}

	plan, err := PlanPayment(cost, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.FromTerrain.Water != 1 {
		t.Errorf("water from terrain = %d, want 1", plan.FromTerrain.Water)
	}
	if plan.OrbsToUse != 1 {
		t.Errorf("orbs = %d, want 1", plan.OrbsToUse)
	}
}

func TestPlanPaymentGenericPrefersTerrainSurplus(t *testing.T) {
	cost := Cost{Generic: 2}
	pool := Pool{ReadyOrbs: 5, Terrain: card.Statistics{Mountain: 1, Water: 3}}

	plan, err := PlanPayment(cost, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.OrbsToUse != 0 {
		t.Errorf("orbs = %d, want 0 when terrain surplus covers generic", plan.OrbsToUse)
	}
	if plan.FromTerrain.Total() != 2 {
		t.Errorf("terrain used = %d, want 2", plan.FromTerrain.Total())
	}
}

func TestPlanPaymentZeroCost(t *testing.T) {
	plan, err := PlanPayment(Cost{}, Pool{ReadyOrbs: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.OrbsToUse != 0 || plan.FromTerrain.Total() != 0 {
		t.Errorf("zero cost planned a payment: %+v", plan)
	}
}

func TestPlanPaymentInsufficient(t *testing.T) {
	tests := []struct {
		name string
		cost Cost
		pool Pool
	}{
		{
			name: "total exceeds pool",
			cost: Cost{Generic: 5},
			pool: Pool{ReadyOrbs: 2, Terrain: card.Statistics{Forest: 1}},
		},
		{
			name: "specific shortfall exceeds orbs",
			cost: Cost{Forest: 3},
			pool: Pool{ReadyOrbs: 1, Terrain: card.Statistics{Mountain: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanPayment(tt.cost, tt.pool)
			if !errors.Is(err, ErrInsufficientMana) {
				t.Fatalf("error = %v, want ErrInsufficientMana", err)
			}
			if plan.OrbsToUse != 0 || plan.FromTerrain.Total() != 0 {
				t.Errorf("failed payment still planned exhaustions: %+v", plan)
			}
		})
	}
}
