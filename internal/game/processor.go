package game

import (
	"context"
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/effects"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// effectContext carries the resolution frame of an executing effect script.
type effectContext struct {
	controller string
	source     card.LKISnapshot
	// boundTargets are the targets validated at play time, if any.
	boundTargets []string
}

// executeEffect runs an effect script step by step. Each step passes
// through the modifier pipeline before executing.
func (g *Game) executeEffect(ctx context.Context, ec effectContext, steps card.Effect) error {
	for _, step := range steps {
		if err := g.executeStepWithModifiers(ctx, ec, step); err != nil {
			return err
		}
	}
	return nil
}

// executeStepWithModifiers applies the per-step modifier pipeline. When the
// step is modifiable and a ReplaceStep modifier matches, only the
// highest-priority replacement executes; the original step and all additive
// modifiers are skipped. Otherwise AddStepBefore injections run in
// ascending priority, then the original step, then AddStepAfter injections.
// Injected steps recurse through the pipeline unless marked non-modifiable.
func (g *Game) executeStepWithModifiers(ctx context.Context, ec effectContext, step card.EffectStep) error {
	var matching []card.StepModifier
	if step.CanBeModified {
		for _, m := range effects.CollectStepModifiers(g.store.InPlay()) {
			if m.Matches(step) {
				matching = append(matching, m)
			}
		}
	}

	var replacement *card.StepModifier
	for i := range matching {
		if matching[i].Kind != card.ReplaceStep {
			continue
		}
		// Collected modifiers arrive priority-ascending, so the last
		// matching replacement has the highest priority.
		replacement = &matching[i]
	}
	if replacement != nil {
		return g.executeEffect(ctx, ec, replacement.Steps)
	}

	for _, m := range matching {
		if m.Kind == card.AddStepBefore {
			if err := g.executeEffect(ctx, ec, m.Steps); err != nil {
				return err
			}
		}
	}
	if err := g.executeStep(ctx, ec, step); err != nil {
		return err
	}
	for _, m := range matching {
		if m.Kind == card.AddStepAfter {
			if err := g.executeEffect(ctx, ec, m.Steps); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeStep runs a single step. "Each player" steps iterate players in
// initiative order, settling (re-adjudication plus reaction drain) between
// each player's sub-resolution rather than after the whole step.
func (g *Game) executeStep(ctx context.Context, ec effectContext, step card.EffectStep) error {
	if step.Optional {
		prompt := fmt.Sprintf("%s: apply %s?", ec.source.Chars.Name, step.Verb)
		yes, err := g.decider.ConfirmOptional(ctx, ec.controller, prompt)
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
	}

	if step.EachPlayer {
		for _, playerID := range g.initiative() {
			if err := g.applyStepFor(ctx, ec, step, playerID); err != nil {
				return err
			}
			if err := g.settle(); err != nil {
				return err
			}
		}
		return nil
	}
	return g.applyStepFor(ctx, ec, step, ec.controller)
}

// applyStepFor executes the verb for one affected player. The verb set is
// closed; a verb without runtime semantics here marks an incompletely
// specified ruleset and is surfaced as an integrity fault.
func (g *Game) applyStepFor(ctx context.Context, ec effectContext, step card.EffectStep, playerID string) error {
	switch step.Verb {
	case card.VerbDraw:
		for i := 0; i < step.Amount; i++ {
			if err := g.drawCard(playerID); err != nil {
				return err
			}
		}
		return nil

	case card.VerbDiscard:
		return g.discardFromHand(ctx, playerID, step.Amount)

	case card.VerbGrantStatus, card.VerbRemoveStatus, card.VerbAddCounters, card.VerbMoveToZone:
		targets, err := g.resolveStepTargets(ctx, ec, step)
		if err != nil {
			return err
		}
		for _, target := range targets {
			if err := g.mutateObject(step, target); err != nil {
				return err
			}
		}
		return nil

	case card.VerbAdvanceExpedition:
		p, ok := g.players[playerID]
		if !ok {
			return integrityFault("effect references unknown player %s", playerID)
		}
		if step.Axis == card.AxisCompanion {
			p.CompanionPosition += step.Amount
		} else {
			p.HeroPosition += step.Amount
		}
		evt := rules.NewEvent(rules.EventExpeditionProgressed, playerID, "")
		evt.Amount = step.Amount
		evt.Data = step.Axis.String()
		g.bus.Publish(evt)
		return nil

	case card.VerbQueueReaction:
		g.queueReactionEmblem(ec.controller, step.Steps, ec.source)
		return nil

	case card.VerbModifyStatistic, card.VerbSetStatistic, card.VerbGainKeyword,
		card.VerbLoseKeyword, card.VerbLoseAbilities, card.VerbSetType:
		// Passive-layer verbs rewrite derived characteristics only; a
		// resolved script cannot carry them because the next adjudication
		// pass would erase the change. Durable stat changes use counters.
		return integrityFault("verb %s is not executable outside the passive layer", step.Verb)
	}
	return integrityFault("unknown verb %d", int(step.Verb))
}

func (g *Game) mutateObject(step card.EffectStep, target *card.GameObject) error {
	switch step.Verb {
	case card.VerbGrantStatus:
		target.Statuses.Add(step.Status)
		g.publishStatus(target, step.Status)
	case card.VerbRemoveStatus:
		target.Statuses.Remove(step.Status)
		g.publishStatus(target, step.Status)
	case card.VerbAddCounters:
		target.AddCounters(step.Counter, step.Amount)
	case card.VerbMoveToZone:
		ref := zone.Shared(step.Zone)
		if step.Zone != card.ZoneExpedition && step.Zone != card.ZoneLimbo {
			ref = zone.Of(step.Zone, target.OwnerID)
		}
		if err := g.store.Move(target.ID, ref); err != nil {
			return err
		}
		g.bus.Publish(rules.NewEvent(rules.EventZoneChange, target.OwnerID, target.ID))
	}
	return nil
}

func (g *Game) publishStatus(target *card.GameObject, status card.Status) {
	evt := rules.NewEvent(rules.EventStatusChanged, target.ControllerID, target.ID)
	evt.Data = string(status)
	g.bus.Publish(evt)
}

// resolveStepTargets binds a step's targets at execution time. Self falls
// back to nothing when the source has left its zone; chosen targets prefer
// the play-time binding and otherwise suspend into the decision provider.
func (g *Game) resolveStepTargets(ctx context.Context, ec effectContext, step card.EffectStep) ([]*card.GameObject, error) {
	switch step.Target.Scope {
	case card.ScopeSelf:
		obj, ok := g.store.Object(ec.source.ObjectID)
		if !ok {
			return nil, nil
		}
		return []*card.GameObject{obj}, nil

	case card.ScopeChosen:
		ids := ec.boundTargets
		if len(ids) == 0 {
			candidates := g.targetCandidates(step.Target)
			count := 1
			if step.Amount > 1 && step.Verb != card.VerbAddCounters {
				count = step.Amount
			}
			prompt := fmt.Sprintf("%s: choose target for %s", ec.source.Chars.Name, step.Verb)
			chosen, err := g.decider.ChooseTargets(ctx, ec.controller, prompt, candidates, count)
			if err != nil {
				return nil, err
			}
			ids = chosen
		}
		var out []*card.GameObject
		for _, id := range ids {
			obj, ok := g.store.Object(id)
			if !ok {
				continue // target left play; effect applies to the rest
			}
			out = append(out, obj)
		}
		return out, nil

	case card.ScopeAllAllied, card.ScopeAllEnemy, card.ScopeAll:
		var out []*card.GameObject
		for _, obj := range g.store.InPlay() {
			if step.Target.HasType && obj.Current.Type != step.Target.OfType {
				continue
			}
			switch step.Target.Scope {
			case card.ScopeAllAllied:
				if obj.ControllerID != ec.controller {
					continue
				}
			case card.ScopeAllEnemy:
				if obj.ControllerID == ec.controller {
					continue
				}
			}
			out = append(out, obj)
		}
		return out, nil
	}
	return nil, integrityFault("unknown target scope %d", int(step.Target.Scope))
}

func (g *Game) targetCandidates(spec card.TargetSpec) []string {
	var out []string
	for _, obj := range g.store.InPlay() {
		if spec.HasType && obj.Current.Type != spec.OfType {
			continue
		}
		out = append(out, obj.ID)
	}
	return out
}

// discardFromHand suspends into the decision provider for which cards to
// give up, re-validating the response before moving anything.
func (g *Game) discardFromHand(ctx context.Context, playerID string, count int) error {
	hand := g.store.In(zone.Of(card.ZoneHand, playerID))
	if count > len(hand) {
		count = len(hand)
	}
	if count == 0 {
		return nil
	}
	ids := make([]string, len(hand))
	for i, obj := range hand {
		ids[i] = obj.ID
	}
	chosen, err := g.decider.ChooseDiscards(ctx, playerID, card.ZoneHand, ids, count)
	if err != nil {
		return err
	}
	if len(chosen) != count {
		return illegalAction(playerID, fmt.Sprintf("must discard exactly %d cards", count))
	}
	for _, id := range chosen {
		obj, ok := g.store.Object(id)
		if !ok || obj.Zone != card.ZoneHand || obj.ZoneOwner != playerID {
			return illegalAction(playerID, "discard selection is not in hand")
		}
		if err := g.store.Move(id, zone.Of(card.ZoneDiscard, playerID)); err != nil {
			return err
		}
		g.bus.Publish(rules.NewEvent(rules.EventCardDiscarded, playerID, id))
	}
	return nil
}
