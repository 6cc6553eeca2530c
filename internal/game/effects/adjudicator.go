// Package effects derives current characteristics from passive abilities.
// The adjudicator re-runs to fixpoint after every relevant mutation instead
// of tracking increments; board sizes are bounded, so correctness wins over
// efficiency here.
package effects

import (
	"sort"

	"go.uber.org/zap"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// passiveEntry pairs a passive ability with its source object.
type passiveEntry struct {
	source  *card.GameObject
	ability *card.Ability
	applied bool
	removed bool
}

// Adjudicator recomputes derived characteristics from dependency-sorted
// passive abilities.
type Adjudicator struct {
	logger *zap.Logger
}

// NewAdjudicator creates an adjudicator.
func NewAdjudicator(logger *zap.Logger) *Adjudicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adjudicator{logger: logger}
}

// Apply re-derives every in-play object's current characteristics:
//
//  1. Reset current characteristics to base (plus counters).
//  2. Collect every passive ability with its source.
//  3. Repeatedly pick the timestamp-earliest "free" ability — one whose
//     every unresolved dependency is mutual (a true cycle cannot be
//     ordered) — apply it, and recompute the dependency facts, which the
//     application may have changed.
//
// Applying the same board twice with no intervening mutation yields
// identical results: the reset step makes the pass a pure function of base
// state.
func (a *Adjudicator) Apply(inPlay []*card.GameObject) {
	for _, obj := range inPlay {
		obj.ResetCurrent()
	}

	entries := collectPassives(inPlay)
	for {
		next := a.selectFree(entries)
		if next == nil {
			return
		}
		next.applied = true
		a.applyPassive(next, inPlay, entries)
	}
}

func collectPassives(inPlay []*card.GameObject) []*passiveEntry {
	var entries []*passiveEntry
	for _, obj := range inPlay {
		for _, ab := range obj.Abilities {
			if ab.Type == card.AbilityPassive {
				entries = append(entries, &passiveEntry{source: obj, ability: ab})
			}
		}
	}
	return entries
}

// selectFree returns the unapplied ability with no unresolved incoming
// dependency, breaking ties by ascending source timestamp. Mutual
// dependencies are treated as mutually free.
func (a *Adjudicator) selectFree(entries []*passiveEntry) *passiveEntry {
	var candidates []*passiveEntry
	for _, e := range entries {
		if e.applied || e.removed {
			continue
		}
		free := true
		for _, other := range entries {
			if other == e || other.applied || other.removed {
				continue
			}
			if dependsOn(e, other) && !dependsOn(other, e) {
				free = false
				break
			}
		}
		if free {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		// Any remaining entries form a cycle with no mutual pair to break
		// it. Every member still applies: fall back to timestamp order.
		for _, e := range entries {
			if !e.applied && !e.removed {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		a.logger.Debug("passive dependency cycle broken by timestamp order",
			zap.Int("members", len(candidates)),
		)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].source.Timestamp < candidates[j].source.Timestamp
	})
	return candidates[0]
}

// dependsOn reports whether ability A must wait for ability B. The relation
// is computed against the current board, not statically: B's steps are
// inspected for outcomes that would change what A does.
func dependsOn(a, b *passiveEntry) bool {
	for _, step := range b.ability.Steps {
		switch step.Verb {
		case card.VerbLoseAbilities:
			// B would strip A's abilities.
			if stepCovers(step, b.source, a.source) {
				return true
			}
		case card.VerbMoveToZone:
			// B would move A's source out of sight.
			if card.HiddenZones[step.Zone] && stepCovers(step, b.source, a.source) {
				return true
			}
		case card.VerbSetType:
			// B retypes objects; A cares when it selects by the new type or
			// declares a type read.
			if abilitySelectsType(a.ability, step.ObjectType) || a.ability.ReadsKey(card.ReadsType) {
				return true
			}
		case card.VerbModifyStatistic, card.VerbSetStatistic:
			if a.ability.ReadsKey(card.ReadsStatistics) {
				return true
			}
		case card.VerbGainKeyword, card.VerbLoseKeyword:
			if a.ability.ReadsKey(card.ReadsKeywords) {
				return true
			}
		}
	}
	return false
}

// abilitySelectsType reports whether any step of the ability filters its
// targets by the given type.
func abilitySelectsType(ab *card.Ability, t card.Type) bool {
	for _, step := range ab.Steps {
		if step.Target.SelectsType(t) {
			return true
		}
	}
	return false
}

// stepCovers reports whether a step executed from source would affect target.
func stepCovers(step card.EffectStep, source, target *card.GameObject) bool {
	switch step.Target.Scope {
	case card.ScopeSelf:
		return source.ID == target.ID
	case card.ScopeAllAllied:
		if source.ControllerID != target.ControllerID {
			return false
		}
	case card.ScopeAllEnemy:
		if source.ControllerID == target.ControllerID {
			return false
		}
	case card.ScopeAll:
	case card.ScopeChosen:
		// Chosen targets are bound at play time; passives cannot know them
		// ahead of application, so assume coverage.
	}
	if step.Target.HasType && target.Current.Type != step.Target.OfType {
		return false
	}
	return true
}

// applyPassive executes one passive's steps against derived characteristics.
// Passive steps default to targeting self unless an explicit non-self target
// is defined.
func (a *Adjudicator) applyPassive(e *passiveEntry, board []*card.GameObject, entries []*passiveEntry) {
	if e.ability.Condition != nil && !e.ability.Condition(e.source, board) {
		return
	}
	for _, step := range e.ability.Steps {
		targets := passiveTargets(step, e.source, board)
		for _, target := range targets {
			applyPassiveStep(step, target, entries)
		}
	}
}

func passiveTargets(step card.EffectStep, source *card.GameObject, board []*card.GameObject) []*card.GameObject {
	if step.Target.Scope == card.ScopeSelf {
		return []*card.GameObject{source}
	}
	var out []*card.GameObject
	for _, obj := range board {
		if stepCovers(step, source, obj) {
			out = append(out, obj)
		}
	}
	return out
}

func applyPassiveStep(step card.EffectStep, target *card.GameObject, entries []*passiveEntry) {
	switch step.Verb {
	case card.VerbModifyStatistic:
		if step.AllTerrains {
			target.Current.Statistics = target.Current.Statistics.AddAll(step.Amount)
		} else {
			target.Current.Statistics = target.Current.Statistics.Add(step.Terrain, step.Amount)
		}
	case card.VerbSetStatistic:
		if step.AllTerrains {
			target.Current.Statistics = card.Statistics{
				Forest:   step.Amount,
				Mountain: step.Amount,
				Water:    step.Amount,
			}
		} else {
			delta := step.Amount - target.Current.Statistics.Get(step.Terrain)
			target.Current.Statistics = target.Current.Statistics.Add(step.Terrain, delta)
		}
	case card.VerbGainKeyword:
		target.Current.Keywords.Add(step.Keyword)
	case card.VerbLoseKeyword:
		target.Current.Keywords.Remove(step.Keyword)
	case card.VerbSetType:
		target.Current.Type = step.ObjectType
	case card.VerbLoseAbilities:
		// Strips the target's remaining unapplied passives for this pass.
		for _, other := range entries {
			if other.source.ID == target.ID && !other.applied {
				other.removed = true
			}
		}
	default:
		// Other verbs mutate real state and have no meaning in the passive
		// layer; the ruleset validator keeps them out of passive scripts.
	}
}

// CollectCostModifiers gathers cost modifiers from active passives on the
// board. Derived on demand, never stored.
func CollectCostModifiers(inPlay []*card.GameObject) []card.CostModifier {
	var out []card.CostModifier
	for _, obj := range inPlay {
		for _, ab := range obj.Abilities {
			if ab.Type != card.AbilityPassive || len(ab.CostModifiers) == 0 {
				continue
			}
			if ab.Condition != nil && !ab.Condition(obj, inPlay) {
				continue
			}
			out = append(out, ab.CostModifiers...)
		}
	}
	return out
}

// CollectStepModifiers gathers step modifiers from active passives on the
// board, sorted by ascending priority.
func CollectStepModifiers(inPlay []*card.GameObject) []card.StepModifier {
	var out []card.StepModifier
	for _, obj := range inPlay {
		for _, ab := range obj.Abilities {
			if ab.Type != card.AbilityPassive || len(ab.StepModifiers) == 0 {
				continue
			}
			if ab.Condition != nil && !ab.Condition(obj, inPlay) {
				continue
			}
			for _, m := range ab.StepModifiers {
				if m.SourceID == "" {
					m.SourceID = obj.ID
				}
				out = append(out, m)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
