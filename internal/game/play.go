package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/effects"
	"github.com/alteredfree/altered-engine-go/internal/game/mana"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// PlayOptions carry the player's selections for a card play.
type PlayOptions struct {
	// Targets bind the definition's declared target requirements, in order.
	Targets []string
	// Mode selects among a multi-modal card's modes.
	HasMode bool
	Mode    int
	// Axis assigns Characters and Expedition Permanents to an expedition.
	Axis card.ExpeditionAxis
}

// PlayCard executes the four-stage play pipeline: declare intent, move to
// Limbo, pay costs, resolve. Once legality is confirmed the stages are
// irrevocable; any fault after the Limbo move rolls the object back to its
// prior zone before the error surfaces, so the caller always observes
// either full success or the untouched pre-play state.
func (g *Game) PlayCard(ctx context.Context, playerID, cardID string, opts PlayOptions) error {
	restore := g.bindCtx(ctx)
	defer restore()

	// Stage 1: declare intent.
	obj, def, originRef, steps, err := g.declareIntent(playerID, cardID, opts)
	if err != nil {
		return err
	}

	// Stage 2: move to Limbo. Cards leaving Reserve gain Fleeting unless
	// they are Landmark-type permanents.
	if err := g.store.Move(obj.ID, zone.Shared(card.ZoneLimbo)); err != nil {
		return err
	}
	gainedFleeting := false
	if originRef.ID == card.ZoneReserve && def.Type != card.TypeLandmarkPermanent {
		obj.Statuses.Add(card.StatusFleeting)
		gainedFleeting = true
	}

	rollback := func() {
		if obj.Zone == card.ZoneLimbo {
			if gainedFleeting {
				obj.Statuses.Remove(card.StatusFleeting)
			}
			if err := g.store.Move(obj.ID, originRef); err != nil {
				g.logger.Error("rollback failed; object stranded in limbo")
			}
		}
	}

	// Stage 3: pay costs.
	if err := g.payPlayCosts(playerID, obj, def, originRef, opts); err != nil {
		rollback()
		if errors.Is(err, mana.ErrInsufficientMana) {
			return illegalActionErr(playerID, "cost cannot be paid", err)
		}
		return &PlayExecutionError{CardID: cardID, Stage: "cost payment", Err: err}
	}

	// Stage 4: resolve.
	if err := g.resolvePlay(ctx, playerID, obj, def, steps, opts); err != nil {
		rollback()
		return &PlayExecutionError{CardID: cardID, Stage: "resolution", Err: err}
	}

	g.bus.Publish(rules.NewEvent(rules.EventCardPlayed, playerID, obj.ID))
	if err := g.settle(); err != nil {
		return err
	}

	ended, err := g.turns.ActionTaken(playerID, true)
	if err != nil {
		return err
	}
	if ended {
		return g.phases.Advance()
	}
	return nil
}

// declareIntent resolves the definition and validates target and mode
// selections against its declared requirements. Nothing is mutated; every
// failure is an IllegalAction.
func (g *Game) declareIntent(playerID, cardID string, opts PlayOptions) (*card.GameObject, *card.Definition, zone.Ref, card.Effect, error) {
	var none zone.Ref
	if g.ended {
		return nil, nil, none, nil, illegalAction(playerID, "game has ended")
	}
	if g.phases.Phase() != rules.PhaseAfternoon || !g.turns.Active() {
		return nil, nil, none, nil, illegalAction(playerID, "cards are played during the Afternoon")
	}
	if g.turns.CurrentPlayer() != playerID {
		return nil, nil, none, nil, illegalAction(playerID, "not your turn")
	}

	obj, ok := g.store.Object(cardID)
	if !ok {
		return nil, nil, none, nil, illegalAction(playerID, "unknown card")
	}
	if obj.OwnerID != playerID {
		return nil, nil, none, nil, illegalAction(playerID, "cannot play an opponent's card")
	}
	if obj.Zone != card.ZoneHand && obj.Zone != card.ZoneReserve {
		return nil, nil, none, nil, illegalAction(playerID, "card must be played from hand or reserve")
	}
	originRef := zone.Of(obj.Zone, obj.ZoneOwner)

	def, err := g.definitionOf(obj)
	if err != nil {
		return nil, nil, none, nil, err
	}
	switch def.Type {
	case card.TypeCharacter, card.TypeSpell, card.TypeLandmarkPermanent, card.TypeExpeditionPermanent:
	default:
		return nil, nil, none, nil, illegalAction(playerID, fmt.Sprintf("%s cards cannot be played", def.Type))
	}

	if err := g.validateTargets(playerID, def, opts.Targets); err != nil {
		return nil, nil, none, nil, err
	}

	mode := -1
	if opts.HasMode {
		mode = opts.Mode
	}
	steps, err := def.EffectSteps(mode)
	if err != nil {
		return nil, nil, none, nil, illegalActionErr(playerID, "invalid mode selection", err)
	}
	return obj, def, originRef, steps, nil
}

// validateTargets re-validates the caller-supplied bindings against the
// definition's requirements and the current board.
func (g *Game) validateTargets(playerID string, def *card.Definition, targets []string) error {
	required := 0
	for _, req := range def.Targets {
		if !req.Optional {
			required++
		}
	}
	if len(targets) < required || len(targets) > len(def.Targets) {
		return illegalAction(playerID, fmt.Sprintf("%s requires %d target(s), got %d", def.Name, required, len(targets)))
	}
	for i, id := range targets {
		req := def.Targets[i]
		target, ok := g.store.Object(id)
		if !ok {
			return illegalAction(playerID, fmt.Sprintf("target %q does not exist", id))
		}
		switch target.Zone {
		case card.ZoneExpedition, card.ZoneHero, card.ZoneLandmark:
		default:
			return illegalAction(playerID, fmt.Sprintf("target %s is not in play", target.Current.Name))
		}
		if req.HasType && target.Current.Type != req.OfType {
			return illegalAction(playerID, fmt.Sprintf("target %s is not a %s", target.Current.Name, req.OfType))
		}
		if req.Opposing && target.ControllerID == playerID {
			return illegalAction(playerID, fmt.Sprintf("target %s must be an opponent's", target.Current.Name))
		}
	}
	return nil
}

// payPlayCosts pays the card's modified cost plus the Tough surcharge for
// pre-selected opposing targets.
func (g *Game) payPlayCosts(playerID string, obj *card.GameObject, def *card.Definition, originRef zone.Ref, opts PlayOptions) error {
	surcharge := 0
	for _, id := range opts.Targets {
		target, ok := g.store.Object(id)
		if !ok {
			continue
		}
		if target.ControllerID != playerID && target.Current.Keywords.Has(card.KeywordTough) {
			surcharge++
		}
	}
	cost, err := g.ModifiedPlayCost(playerID, obj, def, originRef.ID)
	if err != nil {
		return err
	}
	// Surcharge and card cost are one payment: either both are covered or
	// nothing is exhausted.
	return g.payMana(playerID, cost.AddGeneric(surcharge))
}

// ModifiedPlayCost computes the effective cost of playing a card from the
// given origin: the origin-dependent base cost run through all active cost
// modifiers. Pure with respect to game state.
func (g *Game) ModifiedPlayCost(playerID string, obj *card.GameObject, def *card.Definition, origin card.ZoneID) (mana.Cost, error) {
	costStr := def.HandCost
	if origin == card.ZoneReserve && def.ReserveCost != "" {
		costStr = def.ReserveCost
	}
	base, err := mana.ParseCost(costStr)
	if err != nil {
		return mana.Cost{}, integrityFault("definition %s has malformed cost: %v", def.ID, err)
	}

	mods := effects.CollectCostModifiers(g.store.InPlay())
	ctx := card.CostContext{
		CardName:   def.Name,
		CardType:   def.Type,
		PlayerID:   playerID,
		OriginZone: origin,
	}
	return mana.Modified(base, mods, ctx), nil
}

// resolvePlay sends the object to its terminal zone by card type.
func (g *Game) resolvePlay(ctx context.Context, playerID string, obj *card.GameObject, def *card.Definition, steps card.Effect, opts PlayOptions) error {
	switch def.Type {
	case card.TypeCharacter, card.TypeExpeditionPermanent:
		obj.Axis = opts.Axis
		obj.HasAxis = true
		return g.store.Move(obj.ID, zone.Shared(card.ZoneExpedition))

	case card.TypeLandmarkPermanent:
		return g.store.Move(obj.ID, zone.Of(card.ZoneLandmark, playerID))

	case card.TypeSpell:
		ec := effectContext{
			controller:   playerID,
			source:       obj.SnapshotLKI(),
			boundTargets: opts.Targets,
		}
		if err := g.executeEffect(ctx, ec, steps); err != nil {
			return err
		}
		if obj.Zone != card.ZoneLimbo {
			// The effect already relocated its own card.
			return nil
		}
		if obj.HasStatus(card.StatusFleeting) {
			obj.Statuses.Remove(card.StatusFleeting)
			return g.store.Move(obj.ID, zone.Of(card.ZoneDiscard, obj.OwnerID))
		}
		if err := g.store.Move(obj.ID, zone.Of(card.ZoneReserve, obj.OwnerID)); err != nil {
			return err
		}
		if obj.Current.Keywords.Has(card.KeywordCooldown) {
			obj.Statuses.Add(card.StatusExhausted)
		}
		return nil
	}
	return integrityFault("unhandled resolution for card type %s", def.Type)
}

// Pass marks the acting player as passed. When every player has passed, the
// Afternoon ends and the day cycle advances through Dusk and Night.
func (g *Game) Pass(ctx context.Context, playerID string) error {
	restore := g.bindCtx(ctx)
	defer restore()

	if g.ended {
		return illegalAction(playerID, "game has ended")
	}
	if g.phases.Phase() != rules.PhaseAfternoon || !g.turns.Active() {
		return illegalAction(playerID, "passing is an Afternoon action")
	}
	if g.turns.CurrentPlayer() != playerID {
		return illegalAction(playerID, "not your turn")
	}

	p := g.players[playerID]
	ended, err := g.turns.Pass(playerID)
	if err != nil {
		return illegalActionErr(playerID, "cannot pass", err)
	}
	p.HasPassedTurn = true
	if ended {
		return g.phases.Advance()
	}
	return nil
}

// ActivateAbility performs a quick action (ability on an in-play object) or
// a support action (ability on a Reserve object). Neither ends the acting
// player's turn.
func (g *Game) ActivateAbility(ctx context.Context, playerID, objectID, abilityID string) error {
	restore := g.bindCtx(ctx)
	defer restore()

	if g.ended {
		return illegalAction(playerID, "game has ended")
	}
	if g.phases.Phase() != rules.PhaseAfternoon || !g.turns.Active() {
		return illegalAction(playerID, "abilities are activated during the Afternoon")
	}
	if g.turns.CurrentPlayer() != playerID {
		return illegalAction(playerID, "not your turn")
	}

	obj, ok := g.store.Object(objectID)
	if !ok || obj.ControllerID != playerID {
		return illegalAction(playerID, "you do not control that object")
	}

	var ability *card.Ability
	for _, ab := range obj.Abilities {
		if ab.ID == abilityID {
			ability = ab
			break
		}
	}
	if ability == nil {
		return illegalAction(playerID, "object has no such ability")
	}

	switch ability.Type {
	case card.AbilityQuickAction:
		switch obj.Zone {
		case card.ZoneExpedition, card.ZoneHero, card.ZoneLandmark:
		default:
			return illegalAction(playerID, "quick actions require the object in play")
		}
	case card.AbilitySupport:
		if obj.Zone != card.ZoneReserve {
			return illegalAction(playerID, "support abilities are used from reserve")
		}
	default:
		return illegalAction(playerID, fmt.Sprintf("%s abilities cannot be activated", ability.Type))
	}
	if ability.Condition != nil && !ability.Condition(obj, g.store.InPlay()) {
		return illegalAction(playerID, "ability condition not met")
	}

	ec := effectContext{controller: playerID, source: obj.SnapshotLKI()}
	if err := g.executeEffect(ctx, ec, ability.Steps); err != nil {
		return err
	}
	g.bus.Publish(rules.NewEvent(rules.EventQuickActionTaken, playerID, objectID))
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
