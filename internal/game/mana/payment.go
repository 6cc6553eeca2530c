package mana

import (
	"errors"
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// ErrInsufficientMana is returned when a cost exceeds availability. No
// partial payment is ever planned.
var ErrInsufficientMana = errors.New("insufficient mana")

// Pool is a snapshot of a player's payable mana: the count of ready orbs in
// the Mana zone plus terrain statistics contributed by Characters on
// Expedition or Hero zones.
type Pool struct {
	ReadyOrbs int
	Terrain   card.Statistics
}

// Total returns everything the pool can pay.
func (p Pool) Total() int {
	return p.ReadyOrbs + p.Terrain.Total()
}

// Plan describes how a cost will be paid: how much of each terrain
// statistic is consumed and how many ready orbs are exhausted.
type Plan struct {
	FromTerrain card.Statistics
	OrbsToUse   int
}

// PlanPayment computes a payment plan for cost against the pool.
// Terrain-specific requirements are paid first from matching terrain
// statistics; a specific shortfall falls back to ready orbs. The remaining
// generic cost is paid from leftover terrain surplus before exhausting
// further orbs. A zero cost plans zero exhaustions.
func PlanPayment(cost Cost, pool Pool) (Plan, error) {
	if cost.Total() > pool.Total() {
		return Plan{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientMana, cost.Total(), pool.Total())
	}

	plan := Plan{}
	remaining := pool

	for _, t := range card.Terrains {
		need := cost.Specific().Get(t)
		if need == 0 {
			continue
		}
		fromTerrain := need
		if avail := remaining.Terrain.Get(t); fromTerrain > avail {
			fromTerrain = avail
		}
		plan.FromTerrain = plan.FromTerrain.Add(t, fromTerrain)
		remaining.Terrain = remaining.Terrain.Add(t, -fromTerrain)
		// Orbs are typeless and can stand in for any terrain, so a specific
		// requirement the terrain statistics cannot cover is paid from orbs.
		plan.OrbsToUse += need - fromTerrain
	}

	generic := cost.Generic
	for _, t := range card.Terrains {
		if generic == 0 {
			break
		}
		surplus := remaining.Terrain.Get(t)
		if surplus > generic {
			surplus = generic
		}
		plan.FromTerrain = plan.FromTerrain.Add(t, surplus)
		remaining.Terrain = remaining.Terrain.Add(t, -surplus)
		generic -= surplus
	}
	plan.OrbsToUse += generic

	if plan.OrbsToUse > pool.ReadyOrbs {
		return Plan{}, fmt.Errorf("%w: need %d orbs, have %d ready", ErrInsufficientMana, plan.OrbsToUse, pool.ReadyOrbs)
	}
	return plan, nil
}
