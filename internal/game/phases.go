package game

import (
	"context"
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

func (g *Game) registerPhaseHandlers() {
	g.phases.SetHandler(rules.PhaseMorning, func(_ rules.DayPhase, day int) error {
		return g.handleMorning(day)
	})
	g.phases.SetHandler(rules.PhaseNoon, func(_ rules.DayPhase, _ int) error {
		return g.handleNoon()
	})
	g.phases.SetHandler(rules.PhaseAfternoon, func(_ rules.DayPhase, _ int) error {
		return g.turns.Begin(g.firstPlayer)
	})
	g.phases.SetHandler(rules.PhaseDusk, func(_ rules.DayPhase, _ int) error {
		return g.handleDusk()
	})
	g.phases.SetHandler(rules.PhaseNight, func(_ rules.DayPhase, _ int) error {
		return g.handleNight()
	})
}

// handleMorning runs the Succeed, Prepare, Draw, and Expand steps in strict
// order, each followed by a reaction pass. The game's first Morning only
// resets daily flags: the opening hand and mana come from setup.
func (g *Game) handleMorning(day int) error {
	for _, p := range g.players {
		p.resetDailyFlags()
		p.HeroMoved = false
		p.CompanionMoved = false
	}
	if day < 2 {
		return nil
	}

	// Succeed: first-player status rotates in seating order.
	g.firstPlayer = g.nextInOrder(g.firstPlayer)
	g.bus.Publish(rules.NewEvent(rules.EventNextDayFirstPlayer, g.firstPlayer, ""))
	if err := g.settle(); err != nil {
		return err
	}

	// Prepare: everything readies, mana orbs included.
	for _, id := range []card.ZoneID{card.ZoneMana, card.ZoneReserve, card.ZoneExpedition, card.ZoneHero, card.ZoneLandmark} {
		for _, obj := range g.store.InAll(id) {
			if obj.HasStatus(card.StatusExhausted) {
				obj.Statuses.Remove(card.StatusExhausted)
				g.publishStatus(obj, card.StatusExhausted)
			}
		}
	}
	if err := g.settle(); err != nil {
		return err
	}

	// Draw.
	for _, pid := range g.initiative() {
		for i := 0; i < g.opts.MorningDraw; i++ {
			if err := g.drawCard(pid); err != nil {
				return err
			}
		}
	}
	if err := g.settle(); err != nil {
		return err
	}

	// Expand: each player may bank at most one hand card as a Mana Orb.
	ctx := g.opCtx()
	for _, pid := range g.initiative() {
		hand := g.store.In(zone.Of(card.ZoneHand, pid))
		if len(hand) == 0 {
			continue
		}
		ids := make([]string, len(hand))
		for i, obj := range hand {
			ids[i] = obj.ID
		}
		cardID, ok, err := g.decider.ChooseExpandCard(ctx, pid, ids)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := g.expandMana(pid, cardID); err != nil {
			return err
		}
	}
	return g.settle()
}

// handleNoon fires "At Noon" triggers and drains the resulting reactions;
// the phase has no state mutation of its own.
func (g *Game) handleNoon() error {
	g.bus.Publish(rules.NewEvent(rules.EventAtNoon, "", ""))
	return g.settle()
}

// handleDusk computes expedition progress. An axis advances iff its
// controller's terrain total is strictly positive and strictly greater than
// every opponent's total on the same axis. All movement decisions are fixed
// before any position mutates, so resolution order cannot bias the outcome.
func (g *Game) handleDusk() error {
	totals := make(map[string][2]int, len(g.players))
	for pid := range g.players {
		totals[pid] = [2]int{}
	}
	for _, obj := range g.store.In(zone.Shared(card.ZoneExpedition)) {
		if !obj.HasAxis || obj.HasStatus(card.StatusAsleep) {
			continue
		}
		t := totals[obj.ControllerID]
		t[int(obj.Axis)] += obj.Current.Statistics.Total()
		totals[obj.ControllerID] = t
	}

	type advance struct {
		playerID string
		axis     card.ExpeditionAxis
	}
	var advances []advance
	for _, pid := range g.initiative() {
		for _, axis := range []card.ExpeditionAxis{card.AxisHero, card.AxisCompanion} {
			mine := totals[pid][int(axis)]
			if mine <= 0 {
				continue
			}
			wins := true
			for _, opp := range g.opponentsOf(pid) {
				if totals[opp][int(axis)] >= mine {
					wins = false
					break
				}
			}
			if wins {
				advances = append(advances, advance{playerID: pid, axis: axis})
			}
		}
	}

	for _, adv := range advances {
		p := g.players[adv.playerID]
		if adv.axis == card.AxisCompanion {
			p.CompanionPosition++
			p.CompanionMoved = true
		} else {
			p.HeroPosition++
			p.HeroMoved = true
		}
		evt := rules.NewEvent(rules.EventExpeditionProgressed, adv.playerID, "")
		evt.Amount = 1
		evt.Data = adv.axis.String()
		g.bus.Publish(evt)
	}
	return g.settle()
}

// handleNight runs Rest, Clean-up, and the Victory Check.
func (g *Game) handleNight() error {
	if err := g.restExpeditions(); err != nil {
		return err
	}
	if err := g.settle(); err != nil {
		return err
	}
	if err := g.cleanUp(); err != nil {
		return err
	}
	if err := g.settle(); err != nil {
		return err
	}
	g.victoryCheck()
	return nil
}

// restExpeditions relocates Characters from expeditions that moved at Dusk
// back to their controllers' Reserves. Un-moved expeditions stay out.
// Eternal and Anchored cards hold their ground; Fleeting cards go to
// Discard instead of Reserve.
func (g *Game) restExpeditions() error {
	for _, obj := range g.store.In(zone.Shared(card.ZoneExpedition)) {
		if !obj.HasAxis || !obj.Current.Type.IsPermanentOnBoard() {
			continue
		}
		p, ok := g.players[obj.ControllerID]
		if !ok {
			continue
		}
		moved := p.HeroMoved
		if obj.Axis == card.AxisCompanion {
			moved = p.CompanionMoved
		}
		if !moved {
			continue
		}
		if obj.Current.Keywords.Has(card.KeywordEternal) || obj.HasStatus(card.StatusAnchored) {
			continue
		}
		dst := zone.Of(card.ZoneReserve, obj.ControllerID)
		if obj.HasStatus(card.StatusFleeting) {
			obj.Statuses.Remove(card.StatusFleeting)
			dst = zone.Of(card.ZoneDiscard, obj.OwnerID)
		}
		if err := g.store.Move(obj.ID, dst); err != nil {
			return err
		}
	}
	return nil
}

// cleanUp reduces each player's Reserve and Landmark zones to their
// hero-defined limits, suspending into the decision provider for which
// cards to give up.
func (g *Game) cleanUp() error {
	ctx := g.opCtx()
	for _, pid := range g.initiative() {
		p := g.players[pid]
		if err := g.trimZone(ctx, pid, card.ZoneReserve, p.ReserveLimit); err != nil {
			return err
		}
		if err := g.trimZone(ctx, pid, card.ZoneLandmark, p.LandmarkLimit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) trimZone(ctx context.Context, playerID string, zoneID card.ZoneID, limit int) error {
	ref := zone.Of(zoneID, playerID)
	contents := g.store.In(ref)
	excess := len(contents) - limit
	if excess <= 0 {
		return nil
	}
	ids := make([]string, len(contents))
	for i, obj := range contents {
		ids[i] = obj.ID
	}
	chosen, err := g.decider.ChooseDiscards(ctx, playerID, zoneID, ids, excess)
	if err != nil {
		return err
	}
	if len(chosen) != excess {
		return illegalAction(playerID, fmt.Sprintf("must give up exactly %d cards from %s", excess, zoneID))
	}
	for _, id := range chosen {
		obj, ok := g.store.Object(id)
		if !ok || obj.Zone != zoneID || obj.ZoneOwner != playerID {
			return illegalAction(playerID, fmt.Sprintf("clean-up selection is not in %s", zoneID))
		}
		if err := g.store.Move(id, zone.Of(card.ZoneDiscard, obj.OwnerID)); err != nil {
			return err
		}
		g.bus.Publish(rules.NewEvent(rules.EventCardDiscarded, playerID, id))
	}
	return nil
}

// victoryCheck ends the game when a player's combined expedition progress
// reaches the threshold. A tie at the top enters tiebreaker mode instead of
// ending the game.
func (g *Game) victoryCheck() {
	best := -1
	bestPlayer := ""
	tied := false
	reached := false
	for _, pid := range g.initiative() {
		sum := g.players[pid].PositionSum()
		if sum >= g.opts.VictoryThreshold {
			reached = true
		}
		switch {
		case sum > best:
			best = sum
			bestPlayer = pid
			tied = false
		case sum == best:
			tied = true
		}
	}
	if !reached {
		return
	}
	if tied {
		if !g.tiebreakerMode {
			g.tiebreakerMode = true
			g.bus.Publish(rules.NewEvent(rules.EventTiebreakerEntered, "", ""))
		}
		return
	}
	g.ended = true
	g.winner = bestPlayer
	g.phases.End()
	g.bus.Publish(rules.NewEvent(rules.EventGameEnded, bestPlayer, ""))
}
