package game

import (
	"context"
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/mana"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// AvailableMana returns what a player can pay right now: ready orbs in the
// Mana zone plus terrain statistics of their Characters on Expedition or
// Hero zones. Characters in Hand or Reserve contribute nothing.
func (g *Game) AvailableMana(playerID string) mana.Pool {
	pool := mana.Pool{}
	for _, orb := range g.store.In(zone.Of(card.ZoneMana, playerID)) {
		if !orb.HasStatus(card.StatusExhausted) {
			pool.ReadyOrbs++
		}
	}
	for _, obj := range g.store.InPlay() {
		if obj.ControllerID != playerID {
			continue
		}
		switch obj.Zone {
		case card.ZoneExpedition, card.ZoneHero:
		default:
			continue
		}
		switch obj.Current.Type {
		case card.TypeCharacter, card.TypeHero:
			pool.Terrain.Forest += obj.Current.Statistics.Forest
			pool.Terrain.Mountain += obj.Current.Statistics.Mountain
			pool.Terrain.Water += obj.Current.Statistics.Water
		}
	}
	return pool
}

// payMana pays a cost by exhausting ready orbs per the payment plan.
// Terrain statistics are consumed implicitly (they reset each derivation);
// only orbs carry persistent exhaustion. A zero-orb plan exhausts nothing.
// Fails with no exhaustions when the cost exceeds availability.
func (g *Game) payMana(playerID string, cost mana.Cost) error {
	plan, err := mana.PlanPayment(cost, g.AvailableMana(playerID))
	if err != nil {
		return err
	}
	if plan.OrbsToUse == 0 {
		return nil
	}

	exhausted := 0
	for _, orb := range g.store.In(zone.Of(card.ZoneMana, playerID)) {
		if exhausted == plan.OrbsToUse {
			break
		}
		if orb.HasStatus(card.StatusExhausted) {
			continue
		}
		orb.Statuses.Add(card.StatusExhausted)
		exhausted++
	}
	if exhausted != plan.OrbsToUse {
		return integrityFault("payment plan wanted %d orbs but only %d were ready", plan.OrbsToUse, exhausted)
	}

	evt := rules.NewEvent(rules.EventManaPaid, playerID, "")
	evt.Amount = cost.Total()
	g.bus.Publish(evt)
	return nil
}

// ConvertMana exhausts one ready orb to ready one exhausted orb. No net
// mana change; it reshuffles which specific orb is exhausted. Does not end
// the acting player's turn.
func (g *Game) ConvertMana(ctx context.Context, playerID, readyOrbID, exhaustedOrbID string) error {
	_ = ctx
	if g.ended {
		return illegalAction(playerID, "game has ended")
	}
	if g.phases.Phase() != rules.PhaseAfternoon || !g.turns.Active() {
		return illegalAction(playerID, "mana conversion is an Afternoon action")
	}
	if g.turns.CurrentPlayer() != playerID {
		return illegalAction(playerID, "not your turn")
	}

	ready, err := g.manaOrb(playerID, readyOrbID)
	if err != nil {
		return illegalActionErr(playerID, "invalid ready orb", err)
	}
	spent, err := g.manaOrb(playerID, exhaustedOrbID)
	if err != nil {
		return illegalActionErr(playerID, "invalid exhausted orb", err)
	}
	if ready.HasStatus(card.StatusExhausted) {
		return illegalAction(playerID, "orb to spend is already exhausted")
	}
	if !spent.HasStatus(card.StatusExhausted) {
		return illegalAction(playerID, "orb to ready is not exhausted")
	}

	ready.Statuses.Add(card.StatusExhausted)
	spent.Statuses.Remove(card.StatusExhausted)
	g.bus.Publish(rules.NewEvent(rules.EventManaConverted, playerID, readyOrbID))

	if err := g.settle(); err != nil {
		return err
	}
	ended, err := g.turns.ActionTaken(playerID, false)
	if err != nil {
		return err
	}
	if ended {
		return g.phases.Advance()
	}
	return nil
}

func (g *Game) manaOrb(playerID, orbID string) (*card.GameObject, error) {
	obj, ok := g.store.Object(orbID)
	if !ok {
		return nil, fmt.Errorf("unknown object %s", orbID)
	}
	if obj.Zone != card.ZoneMana || obj.ZoneOwner != playerID {
		return nil, fmt.Errorf("object %s is not in %s's mana zone", orbID, playerID)
	}
	return obj, nil
}

// expandMana converts one hand card into a ready, face-down Mana Orb.
// Morning-only, once per turn; enforced here regardless of caller.
func (g *Game) expandMana(playerID, cardID string) error {
	if g.phases.Phase() != rules.PhaseMorning {
		return illegalAction(playerID, "expand is a Morning action")
	}
	p, ok := g.players[playerID]
	if !ok {
		return illegalAction(playerID, "unknown player")
	}
	if p.HasExpandedThisTurn {
		return illegalAction(playerID, "already expanded this turn")
	}

	obj, ok := g.store.Object(cardID)
	if !ok || obj.Zone != card.ZoneHand || obj.ZoneOwner != playerID {
		return illegalAction(playerID, "expand requires a card in your hand")
	}

	if err := g.store.Move(obj.ID, zone.Of(card.ZoneMana, playerID)); err != nil {
		return err
	}
	obj.BecomeManaOrb()
	p.HasExpandedThisTurn = true
	g.bus.Publish(rules.NewEvent(rules.EventManaExpanded, playerID, obj.ID))
	return nil
}
