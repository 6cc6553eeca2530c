package game

import (
	"context"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// triggerEvents maps bus events to the triggers Reaction abilities listen
// for.
var triggerEvents = map[rules.EventType]card.Trigger{
	rules.EventAtNoon:               card.TriggerAtNoon,
	rules.EventCardPlayed:           card.TriggerCardPlayed,
	rules.EventTurnAdvanced:         card.TriggerTurnAdvanced,
	rules.EventDayAdvanced:          card.TriggerDayAdvanced,
	rules.EventCardDrawn:            card.TriggerCardDrawn,
	rules.EventManaExpanded:         card.TriggerManaExpanded,
	rules.EventExpeditionProgressed: card.TriggerExpeditionWon,
}

// registerReactionTriggers subscribes the emblem factory to every trigger
// event. When a trigger fires, each in-play Reaction ability whose condition
// holds queues an emblem into Limbo.
func (g *Game) registerReactionTriggers() {
	for eventType, trigger := range triggerEvents {
		tr := trigger
		g.bus.SubscribeTyped(eventType, func(evt rules.Event) {
			g.queueTriggeredReactions(tr)
		})
	}
}

func (g *Game) queueTriggeredReactions(trigger card.Trigger) {
	board := g.store.InPlay()
	for _, obj := range board {
		for _, ab := range obj.Abilities {
			if ab.Type != card.AbilityReaction || ab.Trigger != trigger {
				continue
			}
			if ab.Condition != nil && !ab.Condition(obj, board) {
				continue
			}
			g.queueReactionEmblem(obj.ControllerID, ab.Steps, obj.SnapshotLKI())
		}
	}
}

// queueReactionEmblem stages a reaction emblem in Limbo and registers it
// with the reaction manager. The emblem carries an immutable LKI snapshot
// of its source; the live source may leave play before resolution.
func (g *Game) queueReactionEmblem(controller string, steps card.Effect, source card.LKISnapshot) {
	emblem := card.NewEmblem(controller, steps, source)
	if err := g.store.Enter(emblem, zone.Shared(card.ZoneLimbo)); err != nil {
		g.logger.Error("failed to stage reaction emblem")
		return
	}

	g.reactions.Queue(rules.ReactionItem{
		Controller:  controller,
		Description: source.Chars.Name,
		EmblemID:    emblem.ID,
		Resolve: func() error {
			ec := effectContext{
				controller: controller,
				source:     emblem.Emblem.Source,
			}
			if err := g.executeEffect(g.opCtx(), ec, emblem.Emblem.Steps); err != nil {
				return err
			}
			return g.store.Destroy(emblem.ID)
		},
		OnPurge: func() {
			// The emblem never resolved; drop it from Limbo silently.
			_ = g.store.Destroy(emblem.ID)
		},
	})
}

// opCtx returns the context of the operation currently driving the engine.
// Execution is single-threaded, so a plain field suffices.
func (g *Game) opCtx() context.Context {
	if g.currentCtx != nil {
		return g.currentCtx
	}
	return context.Background()
}

// bindCtx installs the operation context for the duration of an engine
// call; the returned func restores the previous one.
func (g *Game) bindCtx(ctx context.Context) func() {
	prev := g.currentCtx
	g.currentCtx = ctx
	return func() { g.currentCtx = prev }
}
